package auth

// UserClaims is the common identity interface resolved by the auth middleware.
type UserClaims interface {
	ClientID() string
	Source() string
	HasPermission(action string) bool
}

// APIKeyClaims identifies a caller authenticated with an API key.
type APIKeyClaims struct {
	ClientIDValue string
	Active        bool
}

func (c *APIKeyClaims) ClientID() string          { return c.ClientIDValue }
func (c *APIKeyClaims) Source() string            { return "API_KEY" }
func (c *APIKeyClaims) HasPermission(string) bool { return c.Active }

// ExportTokenClaims identifies a caller holding a presigned export token.
type ExportTokenClaims struct {
	DatasetIDValue string
	TokenIDValue   string
}

func (c *ExportTokenClaims) ClientID() string          { return c.TokenIDValue }
func (c *ExportTokenClaims) Source() string            { return "EXPORT_TOKEN" }
func (c *ExportTokenClaims) HasPermission(string) bool { return true }
