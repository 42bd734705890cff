package email

import "strconv"

func (c *Client) SendWelcomeEmail(to, fullName, role string) error {
	data := map[string]string{
		"UserFullName": fullName,
		"Role":         role,
	}

	return c.SendEmail(to, "Welcome to the directory!", TemplateWelcome, data)
}

// RevenueUpdate describes a revenue table that was just replaced.
type RevenueUpdate struct {
	CompanyName      string
	IndustryTypeName string
	SourceName       string
	Year             int
	RowCount         int
}

func (c *Client) SendRevenueUpdatedEmail(to string, u RevenueUpdate) error {
	data := map[string]string{
		"CompanyName":      u.CompanyName,
		"IndustryTypeName": u.IndustryTypeName,
		"SourceName":       u.SourceName,
		"Year":             strconv.Itoa(u.Year),
		"RowCount":         strconv.Itoa(u.RowCount),
	}

	subject := u.CompanyName + ": " + u.SourceName + " revenue updated"
	return c.SendEmail(to, subject, TemplateRevenueUpdated, data)
}
