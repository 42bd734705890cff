// Package lib groups the supporting libraries that belong to no single
// layer: list query parsing (query), the Resend email client (email), the
// asynq background jobs (job) and small shared helpers (utils).
package lib
