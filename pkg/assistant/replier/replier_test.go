package replier

import (
	"testing"

	"sahby-assistant-be/internal/constant"
)

func TestGenerateGreeting(t *testing.T) {
	r := New(DefaultCatalog())

	hello := r.Generate("hello")
	hi := r.Generate("hi")

	if hello.Reply != hi.Reply {
		t.Errorf("'hello' and 'hi' should produce the same greeting, got %q vs %q", hello.Reply, hi.Reply)
	}
	if hello.Topic != constant.TopicGreeting {
		t.Errorf("Topic = %q, want %q", hello.Topic, constant.TopicGreeting)
	}
	if hello.Arabic {
		t.Error("english greeting flagged as arabic")
	}

	marhaba := r.Generate("مرحبا")
	if marhaba.Topic != constant.TopicGreeting {
		t.Errorf("Topic = %q, want %q", marhaba.Topic, constant.TopicGreeting)
	}
	if !marhaba.Arabic {
		t.Error("arabic greeting not flagged as arabic")
	}
	if marhaba.Reply == hello.Reply {
		t.Error("arabic and english greeting replies must differ")
	}
}

func TestGenerateTopicPriority(t *testing.T) {
	r := New(DefaultCatalog())

	tests := []struct {
		name      string
		input     string
		wantTopic string
	}{
		// Pricing is scanned before verification, so it wins when both match.
		{"pricing beats verification", "what about verification price", constant.TopicPricing},
		// Greeting is first in the scan order and short-circuits everything.
		{"greeting beats pricing", "hi, what about verification price", constant.TopicGreeting},
		{"verification alone", "how does identity verification work", constant.TopicVerification},
		{"safety", "is it safe to send electronics", constant.TopicSafety},
		{"map", "show travelers nearby", constant.TopicMap},
		{"trip", "I want to send a package to Amman", constant.TopicTrip},
		{"rating", "how do ratings work", constant.TopicRating},
		{"support", "I have a problem with my last order", constant.TopicSupport},
		{"profile", "change my account password", constant.TopicProfile},
		{"arabic pricing", "كم تكلفة التوصيل؟", constant.TopicPricing},
		{"fallback", "xyzzy", constant.TopicFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Generate(tt.input)
			if got.Topic != tt.wantTopic {
				t.Errorf("Generate(%q).Topic = %q, want %q", tt.input, got.Topic, tt.wantTopic)
			}
			if got.Reply == "" {
				t.Errorf("Generate(%q) returned empty reply", tt.input)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	r := New(DefaultCatalog())

	first := r.Generate("what about verification price")
	for i := 0; i < 10; i++ {
		again := r.Generate("what about verification price")
		if again != first {
			t.Fatalf("Generate is not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestGenerateLocalizedFallback(t *testing.T) {
	r := New(DefaultCatalog())

	en := r.Generate("qwerty")
	ar := r.Generate("قطع غيار")

	if en.Topic != constant.TopicFallback || ar.Topic != constant.TopicFallback {
		t.Fatalf("expected fallback topics, got %q and %q", en.Topic, ar.Topic)
	}
	if en.Reply == ar.Reply {
		t.Error("fallback reply must be localized by arabic detection")
	}
}

func TestContainsArabic(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"hello", false},
		{"", false},
		{"مرحبا", true},
		{"hello مرحبا", true},
		{"ݐ", true}, // Arabic Supplement block
		{"ࢠ", true}, // Arabic Extended-A block
		{"12345 !?", false},
	}

	for _, tt := range tests {
		if got := ContainsArabic(tt.input); got != tt.want {
			t.Errorf("ContainsArabic(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
