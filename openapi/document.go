package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"gatehouse/config"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

const Version = "1.0.0"

// Document wraps the built spec with render helpers for the two wire
// formats it is served in.
type Document struct {
	spec *openapi3.T
}

func (d *Document) Spec() *openapi3.T {
	return d.spec
}

func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d.spec, "", "  ")
}

func (d *Document) YAML() ([]byte, error) {
	jsonBytes, err := json.Marshal(d.spec)
	if err != nil {
		return nil, err
	}

	var intermediate any
	if err := json.Unmarshal(jsonBytes, &intermediate); err != nil {
		return nil, err
	}
	return yaml.Marshal(intermediate)
}

// NewDocument builds the API description for every mounted route.
func NewDocument(cfg *config.Config) *Document {
	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       cfg.App.Name,
			Description: "Credential and OAuth-linked authentication with email verification, password reset and email-code two-factor.",
			Version:     Version,
		},
		Servers: openapi3.Servers{
			&openapi3.Server{URL: cfg.App.URL},
		},
		Tags: openapi3.Tags{
			&openapi3.Tag{Name: "auth", Description: "Credential flows"},
			&openapi3.Tag{Name: "account", Description: "Account settings"},
			&openapi3.Tag{Name: "api", Description: "Token and session management"},
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Result":  resultSchema(),
				"Token":   tokenSchema(),
				"Session": sessionSchema(),
			},
			SecuritySchemes: openapi3.SecuritySchemes{
				"cookieAuth": &openapi3.SecuritySchemeRef{
					Value: &openapi3.SecurityScheme{
						Type: "apiKey",
						In:   "cookie",
						Name: cfg.Session.CookieName,
					},
				},
				"bearerAuth": &openapi3.SecuritySchemeRef{
					Value: &openapi3.SecurityScheme{
						Type:         "http",
						Scheme:       "bearer",
						BearerFormat: "JWT",
					},
				},
			},
		},
	}

	spec.Paths.Set("/auth/login", &openapi3.PathItem{
		Post: resultOperation("login", "auth", "Sign in with email and password",
			requestBody(map[string]string{"email": "string", "password": "string", "code": "string"})),
	})
	spec.Paths.Set("/auth/register", &openapi3.PathItem{
		Post: resultOperation("register", "auth", "Create an account",
			requestBody(map[string]string{"name": "string", "email": "string", "password": "string"})),
	})
	spec.Paths.Set("/auth/new-verification", &openapi3.PathItem{
		Get: withQueryToken(resultOperation("newVerification", "auth", "Redeem an email verification token", nil)),
	})
	spec.Paths.Set("/auth/reset", &openapi3.PathItem{
		Post: resultOperation("reset", "auth", "Request a password reset email",
			requestBody(map[string]string{"email": "string"})),
	})
	spec.Paths.Set("/auth/new-password", &openapi3.PathItem{
		Post: withQueryToken(resultOperation("newPassword", "auth", "Set a new password with a reset token",
			requestBody(map[string]string{"password": "string", "confirmPassword": "string"}))),
	})
	spec.Paths.Set("/auth/logout", &openapi3.PathItem{
		Post: resultOperation("logout", "auth", "End the current session", nil),
	})
	spec.Paths.Set("/settings", &openapi3.PathItem{
		Patch: secured(resultOperation("updateSettings", "account", "Update account settings",
			requestBody(map[string]string{
				"name": "string", "email": "string", "password": "string",
				"newPassword": "string", "confirmNewPassword": "string", "isTwoFactorEnabled": "boolean",
			}))),
	})
	spec.Paths.Set("/api/admin", &openapi3.PathItem{
		Get: secured(statusOperation("admin", "api", "Probe admin access", "200", "403")),
	})
	spec.Paths.Set("/api/token", &openapi3.PathItem{
		Post: secured(refOperation("issueToken", "api", "Exchange the session for a bearer token", "Token")),
	})
	spec.Paths.Set("/api/sessions", &openapi3.PathItem{
		Get: secured(refOperation("listSessions", "api", "List active sessions", "Session")),
	})
	spec.Paths.Set("/api/sessions/{id}", &openapi3.PathItem{
		Delete: secured(withPathID(statusOperation("revokeSession", "api", "Revoke a session", "204", "404"))),
	})

	return &Document{spec: spec}
}

func resultSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"success":   stringProperty(),
			"error":     stringProperty(),
			"twoFactor": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}},
		},
	}}
}

func tokenSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"token":      stringProperty(),
			"expires_in": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}},
		},
	}}
}

func sessionSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"id":         &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}},
			"ip_address": stringProperty(),
			"device":     stringProperty(),
			"created_at": stringProperty(),
			"expires_at": stringProperty(),
		},
	}}
}

func stringProperty() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
}

func requestBody(fields map[string]string) *openapi3.RequestBodyRef {
	properties := make(openapi3.Schemas, len(fields))
	for name, kind := range fields {
		properties[name] = &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{kind}}}
	}

	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: true,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
						Type:       &openapi3.Types{"object"},
						Properties: properties,
					}},
				},
			},
		},
	}
}

func resultOperation(id, tag, summary string, body *openapi3.RequestBodyRef) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: id,
		Tags:        []string{tag},
		Summary:     summary,
		RequestBody: body,
		Responses:   openapi3.NewResponses(),
	}
	op.Responses.Set("200", jsonResponse("Flow outcome", "#/components/schemas/Result"))
	return op
}

func refOperation(id, tag, summary, schema string) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: id,
		Tags:        []string{tag},
		Summary:     summary,
		Responses:   openapi3.NewResponses(),
	}
	op.Responses.Set("200", jsonResponse("OK", "#/components/schemas/"+schema))
	op.Responses.Set("401", emptyResponse("No session"))
	return op
}

func statusOperation(id, tag, summary, okStatus, failStatus string) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: id,
		Tags:        []string{tag},
		Summary:     summary,
		Responses:   openapi3.NewResponses(),
	}
	op.Responses.Set(okStatus, emptyResponse("OK"))
	op.Responses.Set(failStatus, emptyResponse("Rejected"))
	return op
}

func jsonResponse(description, ref string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &description,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: &openapi3.SchemaRef{Ref: ref},
				},
			},
		},
	}
}

func emptyResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: &openapi3.Response{Description: &description},
	}
}

func secured(op *openapi3.Operation) *openapi3.Operation {
	op.Security = &openapi3.SecurityRequirements{
		openapi3.SecurityRequirement{"cookieAuth": []string{}},
		openapi3.SecurityRequirement{"bearerAuth": []string{}},
	}
	return op
}

func withQueryToken(op *openapi3.Operation) *openapi3.Operation {
	op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:     "token",
			In:       "query",
			Required: true,
			Schema:   stringProperty(),
		},
	})
	return op
}

func withPathID(op *openapi3.Operation) *openapi3.Operation {
	op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:     "id",
			In:       "path",
			Required: true,
			Schema:   &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}},
		},
	})
	return op
}

// Validate runs kin-openapi's own validation over the built document.
func (d *Document) Validate(ctx context.Context) error {
	if err := d.spec.Validate(ctx); err != nil {
		return fmt.Errorf("openapi document invalid: %w", err)
	}
	return nil
}
