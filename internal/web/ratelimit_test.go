package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perMinute int) (*clientLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)}
	l := newClientLimiter(perMinute)
	l.now = clock.now
	return l, clock
}

func TestClientLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(2)

	for i := 0; i < 2; i++ {
		if ok, _ := l.allow("10.0.0.1"); !ok {
			t.Fatalf("request %d from first client rejected", i+1)
		}
	}
	ok, wait := l.allow("10.0.0.1")
	if ok {
		t.Fatal("third request within the minute allowed")
	}
	if wait <= 0 || wait > time.Minute {
		t.Errorf("wait = %v, want within (0, 1m]", wait)
	}

	if ok, _ := l.allow("10.0.0.2"); !ok {
		t.Error("second client rejected because the first one is exhausted")
	}
}

func TestClientLimiter_Refills(t *testing.T) {
	l, clock := newTestLimiter(1)

	if ok, _ := l.allow("10.0.0.1"); !ok {
		t.Fatal("first request rejected")
	}
	if ok, _ := l.allow("10.0.0.1"); ok {
		t.Fatal("second request allowed immediately")
	}

	clock.advance(time.Minute)
	if ok, _ := l.allow("10.0.0.1"); !ok {
		t.Error("request after a minute rejected")
	}
}

func TestClientLimiter_RejectedRequestsDoNotConsume(t *testing.T) {
	l, clock := newTestLimiter(1)

	l.allow("10.0.0.1")
	for i := 0; i < 5; i++ {
		l.allow("10.0.0.1")
	}

	clock.advance(time.Minute)
	if ok, _ := l.allow("10.0.0.1"); !ok {
		t.Error("rejected attempts pushed the next token further out")
	}
}

func TestClientLimiter_ForgetsIdleClients(t *testing.T) {
	l, clock := newTestLimiter(5)

	l.allow("10.0.0.1")
	l.allow("10.0.0.2")
	if got := l.size(); got != 2 {
		t.Fatalf("size = %d, want 2", got)
	}

	clock.advance(clientIdleAfter + time.Second)
	l.allow("10.0.0.3")
	if got := l.size(); got != 1 {
		t.Errorf("size after idle period = %d, want 1", got)
	}
}

func TestClientAddress(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "ipv4 connection", remoteAddr: "192.0.2.7:51234", want: "192.0.2.7"},
		{name: "ipv6 connection", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "no port", remoteAddr: "192.0.2.7", want: "192.0.2.7"},
		{
			name:       "proxy headers ignored by default",
			remoteAddr: "192.0.2.7:1",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9"},
			want:       "192.0.2.7",
		},
		{
			name:       "real ip header",
			remoteAddr: "127.0.0.1:1",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9", "X-Forwarded-For": "198.51.100.1"},
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "first forwarded address",
			remoteAddr: "127.0.0.1:1",
			headers:    map[string]string{"X-Forwarded-For": " 203.0.113.9 , 10.0.0.1"},
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "trusted but absent",
			remoteAddr: "127.0.0.1:1",
			trustProxy: true,
			want:       "127.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := clientAddress(r, tt.trustProxy); got != tt.want {
				t.Errorf("clientAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}
