package uaclass

import "testing"

const (
	uaChromeWin  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	uaEdgeWin    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.2478.51"
	uaFirefox    = "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"
	uaSafariMac  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"
	uaIPhone     = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
	uaIPad       = "Mozilla/5.0 (iPad; CPU OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/604.1"
	uaAndroid    = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Mobile Safari/537.36"
	uaOperaOld   = "Opera/9.80 (Windows NT 6.1; U; en) Presto/2.10.289 Version/12.02"
	uaCurlClient = "curl/8.5.0"
)

func TestBrowser(t *testing.T) {
	tests := []struct {
		name, ua, want string
	}{
		{"chrome", uaChromeWin, "Chrome"},
		{"edge carries chrome token", uaEdgeWin, "Edge"},
		{"firefox", uaFirefox, "Firefox"},
		{"safari", uaSafariMac, "Safari"},
		{"mobile safari", uaIPhone, "Safari"},
		{"android chrome", uaAndroid, "Chrome"},
		{"presto opera", uaOperaOld, "Opera"},
		{"unknown", uaCurlClient, "Other"},
		{"empty", "", "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Browser(tt.ua); got != tt.want {
				t.Errorf("Browser() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBrowser_ChromeAndEdgIsEdge(t *testing.T) {
	if got := Browser("Chrome/1 Edg/1"); got != "Edge" {
		t.Errorf("got %q, want Edge", got)
	}
}

func TestDevice(t *testing.T) {
	tests := []struct {
		name, ua, want string
	}{
		{"desktop", uaChromeWin, Desktop},
		{"iphone", uaIPhone, Mobile},
		{"android phone", uaAndroid, Mobile},
		{"ipad", uaIPad, Tablet},
		{"generic tablet", "Mozilla/5.0 (Linux; U; Tablet)", Tablet},
		{"empty", "", Desktop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Device(tt.ua); got != tt.want {
				t.Errorf("Device() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOS(t *testing.T) {
	tests := []struct {
		ua, want string
	}{
		{uaChromeWin, "Windows"},
		{uaIPhone, "iOS"},
		{uaIPad, "iOS"},
		{uaAndroid, "Android"},
		{uaSafariMac, "macOS"},
		{uaFirefox, "Linux"},
		{uaCurlClient, "Other"},
	}
	for _, tt := range tests {
		if got := OS(tt.ua); got != tt.want {
			t.Errorf("OS(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}
