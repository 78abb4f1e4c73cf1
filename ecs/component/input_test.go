package component

import "testing"

func TestInputEdges(t *testing.T) {
	in := &Input{}
	in.Next(KeySet(0).With(KeyLeft).With(KeyJump))
	if !in.IsPressed(KeyLeft) || !in.IsPressed(KeyJump) || in.AxisX() != -1 {
		t.Fatalf("expected left and jump pressed, got %+v", in)
	}

	in.Next(KeySet(0).With(KeyLeft).With(KeyRight))
	if in.IsPressed(KeyLeft) || !in.IsHeld(KeyLeft) {
		t.Fatalf("expected left held without a new press")
	}
	if !in.IsReleased(KeyJump) || !in.IsPressed(KeyRight) {
		t.Fatalf("expected jump released and right pressed")
	}
	if in.AxisX() != 0 {
		t.Fatalf("expected opposing keys to cancel, got %v", in.AxisX())
	}

	var nilInput *Input
	if nilInput.IsHeld(KeyLeft) || nilInput.AxisY() != 0 {
		t.Fatalf("expected nil input to report nothing")
	}
}

func TestKeySet(t *testing.T) {
	s := KeySet(0).With(KeyNone).With(KeyGrab)
	if s.Has(KeyNone) || !s.Has(KeyGrab) {
		t.Fatalf("unexpected set %b", s)
	}
	if s.Without(KeyGrab) != 0 {
		t.Fatalf("expected empty set")
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{"jump", KeyJump, false},
		{"  Dash ", KeyDash, false},
		{"", KeyNone, false},
		{"fly", KeyNone, true},
	}
	for _, tc := range cases {
		got, err := ParseKey(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ParseKey(%q) = %v, %v", tc.in, got, err)
		}
	}
	if Key(200).String() != "key(200)" {
		t.Fatalf("unexpected name for unknown key: %s", Key(200))
	}
}
