package main

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/CTAG07/Bestiary/pkg/selector"
)

func TestGenerate_Interactive(t *testing.T) {
	env := newTestEnv(t, testData)

	out, err := env.run(t, "feathers\nscales\n", env.generateArgs()...)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for _, want := range []string{
		"Available skin type options:\n1. Fur\n2. Scales\n",
		`"feathers" is not a valid skin type.`,
		"Website was successfully generated to the file " + env.output,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}

	page := env.readOutput(t)
	if !strings.Contains(page, "Cobra") {
		t.Errorf("page should contain the selected animal, got %q", page)
	}
	for _, absent := range []string{"Lion", "Bear", "Jellyfish", "__REPLACE_ANIMALS_INFO__"} {
		if strings.Contains(page, absent) {
			t.Errorf("page should not contain %q, got %q", absent, page)
		}
	}
	if !strings.HasPrefix(page, `<html><body><ul class="cards"><li class="cards__item">`) {
		t.Errorf("cards should be substituted in place, got %q", page)
	}
}

func TestGenerate_ValueFlagIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t, testData)

	if _, err := env.run(t, "", env.generateArgs("--value", "FUR")...); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	page := env.readOutput(t)
	for _, want := range []string{"Lion", "Bear"} {
		if !strings.Contains(page, want) {
			t.Errorf("page should contain %q, got %q", want, page)
		}
	}
	if strings.Index(page, "Lion") > strings.Index(page, "Bear") {
		t.Error("cards should keep the order of the data file")
	}
	if strings.Contains(page, "Cobra") {
		t.Errorf("page should not contain Cobra, got %q", page)
	}
}

func TestGenerate_UnknownValue(t *testing.T) {
	env := newTestEnv(t, testData)

	_, err := env.run(t, "", env.generateArgs("--value", "scale")...)
	if err == nil {
		t.Fatal("expected an error for an unknown value")
	}
	if !strings.Contains(err.Error(), `did you mean "Scales"?`) {
		t.Errorf("error should suggest the closest option, got %v", err)
	}
	if _, statErr := os.Stat(env.output); !os.IsNotExist(statErr) {
		t.Error("no page should be written for an unknown value")
	}
}

func TestGenerate_NoOptions(t *testing.T) {
	env := newTestEnv(t, `[{"name": "Ghost", "characteristics": {"diet": "None"}}]`)

	out, err := env.run(t, "", env.generateArgs()...)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "No skin type options found in the data. Nothing was generated.") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, statErr := os.Stat(env.output); !os.IsNotExist(statErr) {
		t.Error("no page should be written when there are no options")
	}
}

func TestGenerate_EndOfInput(t *testing.T) {
	env := newTestEnv(t, testData)

	_, err := env.run(t, "nothing\n", env.generateArgs()...)
	if !errors.Is(err, selector.ErrInterrupted) {
		t.Errorf("expected ErrInterrupted, got %v", err)
	}
}

func TestGenerate_AllWithExtendedLayout(t *testing.T) {
	env := newTestEnv(t, testData)

	if _, err := env.run(t, "", env.generateArgs("--all", "--layout", "extended")...); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	page := env.readOutput(t)
	for _, want := range []string{"Lion", "Cobra", "Bear", "Jellyfish"} {
		if !strings.Contains(page, want) {
			t.Errorf("page should contain %q, got %q", want, page)
		}
	}
}

func TestGenerate_OtherAttribute(t *testing.T) {
	env := newTestEnv(t, testData)

	if _, err := env.run(t, "omnivore\n", env.generateArgs("--attribute", "diet")...); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	page := env.readOutput(t)
	if !strings.Contains(page, "Bear") || strings.Contains(page, "Lion") {
		t.Errorf("page should only contain the omnivore, got %q", page)
	}
}

func TestGenerate_AllAndValueConflict(t *testing.T) {
	env := newTestEnv(t, testData)
	if _, err := env.run(t, "", env.generateArgs("--all", "--value", "fur")...); err == nil {
		t.Error("--all and --value together should be rejected")
	}
}

func TestGenerate_MissingInputs(t *testing.T) {
	env := newTestEnv(t, testData)

	if _, err := env.run(t, "fur\n", "generate", "--data", env.data+".missing", "--template", env.template, "--output", env.output); err == nil {
		t.Error("expected an error for a missing data file")
	}
	if _, err := env.run(t, "fur\n", "generate", "--data", env.data, "--template", env.template+".missing", "--output", env.output); err == nil {
		t.Error("expected an error for a missing template file")
	}
	if _, statErr := os.Stat(env.output); !os.IsNotExist(statErr) {
		t.Error("no page should be written when inputs are missing")
	}
}

func TestGenerate_MissingPlaceholder(t *testing.T) {
	env := newTestEnv(t, testData)
	if err := os.WriteFile(env.template, []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := env.run(t, "", env.generateArgs("--value", "fur", "--strict")...); err == nil {
		t.Error("strict mode should fail without a placeholder")
	}
	if _, err := env.run(t, "", env.generateArgs("--value", "fur")...); err != nil {
		t.Fatalf("lenient mode failed: %v", err)
	}
	if page := env.readOutput(t); page != "<html></html>" {
		t.Errorf("template should be written unchanged, got %q", page)
	}
}

func TestGenerate_FromConfigFile(t *testing.T) {
	env := newTestEnv(t, testData)
	config := "data_config:\n" +
		"  data_path: " + env.data + "\n" +
		"  template_path: " + env.template + "\n" +
		"  output_path: " + env.output + "\n" +
		"  filter_attribute: diet\n"
	env.config = env.config[:len(env.config)-len(".json")] + ".yaml"
	if err := os.WriteFile(env.config, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := env.run(t, "herbivore\ncarnivore\n")
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}
	if !strings.Contains(out, "Available diet options:") {
		t.Errorf("root command should prompt for the configured attribute, got %q", out)
	}
	page := env.readOutput(t)
	for _, want := range []string{"Lion", "Cobra", "Jellyfish"} {
		if !strings.Contains(page, want) {
			t.Errorf("page should contain %q, got %q", want, page)
		}
	}
}

func TestOptionsCmd(t *testing.T) {
	env := newTestEnv(t, testData)

	out, err := env.run(t, "", "options", "--data", env.data)
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	for _, want := range []string{"Fur", "Scales"} {
		if !strings.Contains(out, want) {
			t.Errorf("options output should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "Fur") > strings.Index(out, "Scales") {
		t.Errorf("options should be sorted, got:\n%s", out)
	}

	out, err = env.run(t, "", "options", "--data", env.data, "--attribute", "weight")
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	if !strings.Contains(out, "No weight options found in the data.") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestGenerate_NoOptionsBeatsMissingTemplate(t *testing.T) {
	env := newTestEnv(t, `[{"name": "Ghost"}]`)

	out, err := env.run(t, "", "generate", "--data", env.data, "--template", env.template+".missing", "--output", env.output)
	if err != nil {
		t.Fatalf("no options should be reported before the template is read, got %v", err)
	}
	if !strings.Contains(out, "No skin type options found in the data. Nothing was generated.") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestGenerate_EscapeHTMLFlag(t *testing.T) {
	env := newTestEnv(t, `[{"name": "Przewalski's Horse", "characteristics": {"skin_type": "Hair", "diet": "Grass & Herbs"}}]`)

	if _, err := env.run(t, "", env.generateArgs("--value", "hair")...); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if page := env.readOutput(t); !strings.Contains(page, "Przewalski's Horse") || !strings.Contains(page, "Grass & Herbs") {
		t.Errorf("values should be written verbatim, got %q", page)
	}

	if _, err := env.run(t, "", env.generateArgs("--value", "hair", "--escape-html")...); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if page := env.readOutput(t); !strings.Contains(page, "Przewalski&#39;s Horse") || !strings.Contains(page, "Grass &amp; Herbs") {
		t.Errorf("values should be escaped, got %q", page)
	}
}
