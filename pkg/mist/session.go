package mist

import (
	"context"
	"fmt"
)

// PasswordFunc supplies a password when basic-auth credentials lack one.
// It receives the username being logged in.
type PasswordFunc func(username string) (string, error)

// Login builds a client from credentials and verifies them against the
// cloud. With token auth the token is checked as-is; with basic auth a
// missing password is requested through askPassword.
func Login(ctx context.Context, creds *Credentials, askPassword PasswordFunc) (*Client, *Self, error) {
	if err := creds.Validate(); err != nil {
		return nil, nil, err
	}

	if !creds.HasToken() && creds.Password == "" {
		if askPassword == nil {
			return nil, nil, fmt.Errorf("no MIST_PASSWORD defined and no way to ask for one")
		}
		password, err := askPassword(creds.Username)
		if err != nil {
			return nil, nil, fmt.Errorf("reading password: %w", err)
		}
		creds.Password = password
	}

	client := NewClient(creds)
	self, err := client.GetSelf(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("authenticating against %s: %w", creds.BaseURL(), err)
	}
	return client, self, nil
}
