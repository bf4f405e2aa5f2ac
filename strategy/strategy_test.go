package strategy

import "testing"

func TestActionString(t *testing.T) {
	cases := map[Action]string{
		ActionInit:                 "init",
		ActionExtension:            "extension",
		ActionSelect:               "select",
		ActionCrossover:            "crossover",
		ActionMutate:               "mutate",
		ActionFitness:              "fitness",
		ActionUpdateBestChromosome: "update_best_chromosome",
		ActionOther:                "other",
		Action(999):                "other",
	}
	for action, want := range cases {
		if got := action.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", action, got, want)
		}
	}
}

func TestConfigErrorOrNil(t *testing.T) {
	var empty *ConfigError
	if empty.OrNil() != nil {
		t.Errorf("expected nil *ConfigError.OrNil() to return nil")
	}

	fresh := &ConfigError{}
	if fresh.OrNil() != nil {
		t.Errorf("expected a ConfigError with no problems to OrNil() to nil")
	}

	fresh.Add("problem one").Add("problem two")
	err := fresh.OrNil()
	if err == nil {
		t.Fatalf("expected a ConfigError with problems to OrNil() to a non-nil error")
	}
	if err.Error() == "" {
		t.Errorf("expected a non-empty error message")
	}
}
