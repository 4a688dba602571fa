package apiclient

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
)

// Credential is a session cookie in a form that survives a restart.
type Credential struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// credentialJar holds the server-issued session cookies. Reset drops them all.
type credentialJar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
}

func newCredentialJar() *credentialJar {
	j := &credentialJar{}
	j.Reset()
	return j
}

func (j *credentialJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.inner.SetCookies(u, cookies)
}

func (j *credentialJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

func (j *credentialJar) Reset() {
	// cookiejar.New only fails on a bad PublicSuffixList option
	inner, _ := cookiejar.New(nil)
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()
}
