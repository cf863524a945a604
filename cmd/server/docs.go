// Package main Provely Server API
//
//	@title						Provely Server API
//	@version					1.0
//	@description				Invitation, verification and notification API for the Provely platform
//
//	@contact.name				Provely Support
//	@contact.url				https://provely.io/support
//	@contact.email				support@provely.io
//
//	@license.name				Proprietary
//	@license.url				https://provely.io/license
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					Auth
//	@tag.description			Registration and login
//
//	@tag.name					User
//	@tag.description			User directory
//
//	@tag.name					Invitations
//	@tag.description			Sending, verifying and accepting invitations
//
//	@tag.name					Notifications
//	@tag.description			In-app notification inbox
//
//	@tag.name					Settings
//	@tag.description			Platform invitation settings
package main
