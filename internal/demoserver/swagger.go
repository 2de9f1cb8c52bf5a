package demoserver

// General API annotations for swag. Regenerate docs after changing
// handler annotations:
//
//go:generate swag init -g swagger.go -d . -o ../../docs

//	@title			FinShield Demo Analysis API
//	@version		1.0
//	@description	Stand-in fraud analysis service for local console development.
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
