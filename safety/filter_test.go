package safety

import "testing"

func TestRedact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "Can you post the reel on Friday?", want: "Can you post the reel on Friday?"},
		{name: "email", in: "mail me at jane.doe@example.com please", want: "mail me at [redacted] please"},
		{name: "phone with spaces", in: "call +91 98765 43210 now", want: "call [redacted] now"},
		{name: "phone with dashes", in: "ring 987-654-3210", want: "ring [redacted]"},
		{name: "url", in: "see https://insta.gram/x?y=1 for refs", want: "see [redacted] for refs"},
		{name: "www link", in: "check www.portfolio.example", want: "check [redacted]"},
		{name: "bare domain", in: "visit mysite.com today", want: "visit [redacted] today"},
		{name: "handle", in: "follow @jane_doe for updates", want: "follow [redacted] for updates"},
		{name: "handle at start", in: "@brandname dm me", want: "[redacted] dm me"},
		{name: "price stays", in: "budget is 15000 for 3 reels", want: "budget is 15000 for 3 reels"},
		{name: "date stays", in: "deliver by 12.05.2026", want: "deliver by 12.05.2026"},
		{name: "phone with country code and area", in: "+91 (987) 654-3210 works", want: "[redacted] works"},
		{name: "phone in one run", in: "my number 9876543210", want: "my number [redacted]"},
		{name: "phone in two blocks", in: "call 98765 43210", want: "call [redacted]"},
		{name: "short international fragment stays", in: "room +1 23 45", want: "room +1 23 45"},
		{name: "price list stays", in: "Budget 1500 2000 2500 for 3 reels", want: "Budget 1500 2000 2500 for 3 reels"},
		{name: "comma price list stays", in: "options 1500, 2000, 2500, 3000", want: "options 1500, 2000, 2500, 3000"},
		{name: "numbered points stay", in: "see point 1. 2. 3. 4. 5. 6. 7. 8. 9. 10.", want: "see point 1. 2. 3. 4. 5. 6. 7. 8. 9. 10."},
		{name: "whitespace only", in: "   ", want: "   "},
	}
	filter := NewFilter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Redact(tt.in); got != tt.want {
				t.Fatalf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCountDigits(t *testing.T) {
	if got := countDigits("+91 (987) 654-3210"); got != 12 {
		t.Fatalf("countDigits = %d, want 12", got)
	}
}
