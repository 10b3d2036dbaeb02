package config

// IsAdmin reports whether userID is the configured admin. No admin is
// configured when AdminUserID is zero, and then nobody is.
func (c *Config) IsAdmin(userID int64) bool {
	return c.Telegram.AdminUserID != 0 && userID == c.Telegram.AdminUserID
}

// TaskEnabled reports whether the named scheduler task is configured and on.
func (c *Config) TaskEnabled(name string) bool {
	t, ok := c.Scheduler.Tasks[name]
	return ok && t.Enabled
}
