package transport

import "testing"

func TestEndpoint(t *testing.T) {
	tests := []struct {
		base    string
		want    string
		wantErr bool
	}{
		{"http://relay.example:8080", "ws://relay.example:8080/host", false},
		{"https://relay.example/", "wss://relay.example/host", false},
		{"ws://127.0.0.1:9000", "ws://127.0.0.1:9000/host", false},
		{"localhost:8080", "ws://localhost:8080/host", false},
		{"ftp://relay.example", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.base, func(t *testing.T) {
			got, err := endpoint(tc.base, "/host")
			if (err != nil) != tc.wantErr {
				t.Fatalf("endpoint() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("endpoint() = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestControlFrames(t *testing.T) {
	c, err := ParseControl(Control{Relay: ControlCode, Code: "ABC234"}.Marshal())
	if err != nil || c.Relay != ControlCode || c.Code != "ABC234" {
		t.Errorf("ParseControl() = %+v, %v", c, err)
	}
	if _, err := ParseControl([]byte(`{"type":"avatar_state"}`)); err == nil {
		t.Error("frame without relay field should be rejected")
	}
}
