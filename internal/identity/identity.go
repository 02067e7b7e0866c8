// Package identity resolves the signed-in tourist.
package identity

import (
	"context"
	"errors"
	"os"
	"strings"
)

// ErrNotAuthenticated is returned when no signed-in user is available.
var ErrNotAuthenticated = errors.New("not authenticated")

// DefaultEnvVar is the environment variable read by FromEnv when no name is given.
const DefaultEnvVar = "TOURPREF_USER"

// Provider returns the current user's stable identifier, or false when
// nobody is signed in.
type Provider interface {
	CurrentUser(ctx context.Context) (string, bool)
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(ctx context.Context) (string, bool)

func (f ProviderFunc) CurrentUser(ctx context.Context) (string, bool) {
	return f(ctx)
}

type static string

// Static returns a Provider that always reports id. An empty or blank id
// means unauthenticated.
func Static(id string) Provider {
	return static(strings.TrimSpace(id))
}

func (s static) CurrentUser(context.Context) (string, bool) {
	if s == "" {
		return "", false
	}
	return string(s), true
}

// Anonymous returns a Provider that never has a signed-in user.
func Anonymous() Provider {
	return static("")
}

type envProvider struct {
	name string
}

// FromEnv returns a Provider reading the user id from the named environment
// variable at call time. An empty name uses DefaultEnvVar.
func FromEnv(name string) Provider {
	if name == "" {
		name = DefaultEnvVar
	}
	return envProvider{name: name}
}

func (e envProvider) CurrentUser(context.Context) (string, bool) {
	id := strings.TrimSpace(os.Getenv(e.name))
	return id, id != ""
}

// Require returns the current user or ErrNotAuthenticated.
func Require(ctx context.Context, p Provider) (string, error) {
	if p == nil {
		return "", ErrNotAuthenticated
	}
	id, ok := p.CurrentUser(ctx)
	if !ok || strings.TrimSpace(id) == "" {
		return "", ErrNotAuthenticated
	}
	return id, nil
}
