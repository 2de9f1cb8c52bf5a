package interfaces

// TokenProvider exposes the current access token to components that attach
// authentication to outgoing requests. The session manager implements this;
// the gateway consumes it. An empty string means "no authenticated session".
type TokenProvider interface {
	AccessToken() string
}

// ExpiryListener is notified when the service answers 401 on a protected
// endpoint. Listeners must not clear the session or force navigation; the
// user decides whether to log out.
type ExpiryListener interface {
	SessionExpired()
}

// ExpiryListenerFunc adapts a plain function to ExpiryListener.
type ExpiryListenerFunc func()

func (f ExpiryListenerFunc) SessionExpired() { f() }
