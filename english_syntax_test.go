package nlg

import "testing"

func TestEnglishQuestions(t *testing.T) {
	r := newRealiser(t)
	en := r.Factory(English)

	tests := []struct {
		it      InterrogativeType
		subject string
		verb    string
		object  any
		want    string
	}{
		{InterrogativeWhoSubject, "the man", "greet", "the crowd", "Who greets the crowd?"},
		{InterrogativeWhatObject, "the man", "see", nil, "What does the man see?"},
		{InterrogativeWhy, "the man", "greet", "the crowd", "Why does the man greet the crowd?"},
		{InterrogativeHowMany, "the dog", "run", nil, "How many dogs run?"},
	}
	for _, tt := range tests {
		t.Run(tt.it.String(), func(t *testing.T) {
			c := en.Clause(tt.subject, tt.verb, tt.object)
			c.Features().Interrogative = tt.it
			if got := r.RealiseSentence(c); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnglishVerbGroup(t *testing.T) {
	r := newRealiser(t)
	en := r.Factory(English)

	tests := []struct {
		name  string
		build func() Element
		want  string
	}{
		{
			name: "modal perfect progressive",
			build: func() Element {
				c := en.Clause("the man", "greet", "the crowd")
				c.Features().Modal = "can"
				c.Features().Set(FlagPerfect|FlagProgressive, true)
				return c
			},
			want: "The man can have been greeting the crowd.",
		},
		{
			name: "past progressive",
			build: func() Element {
				c := en.Clause("the man", "greet", "the crowd")
				c.Features().Tense = TensePast
				c.Features().Set(FlagProgressive, true)
				return c
			},
			want: "The man was greeting the crowd.",
		},
		{
			name: "pronoun word subject",
			build: func() Element {
				return en.Clause(en.NounPhrase(nil, en.Word("I", CatPronoun)), "greet", "the crowd")
			},
			want: "I greet the crowd.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RealiseSentence(tt.build()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
