package email

// PreviewData holds sample data for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFullName": "Jane Doe",
		"Role":         "editor",
	},
	TemplateRevenueUpdated: {
		"CompanyName":      "Acme Analytics",
		"IndustryTypeName": "Software as a Service",
		"SourceName":       "Subscriptions",
		"Year":             "2024",
		"RowCount":         "12",
	},
}
