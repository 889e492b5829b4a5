package i18n

import (
	"encoding/json"
	"io/fs"
	"sort"
	"strings"
	"testing"
)

func TestLocaleKeysParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, LangEN)
	ro := mustLoadLocaleMessages(t, LangRO)

	missingInRO := missingKeys(en, ro)
	missingInEN := missingKeys(ro, en)

	if len(missingInRO) == 0 && len(missingInEN) == 0 {
		return
	}

	if len(missingInRO) > 0 {
		t.Errorf("keys missing in ro locale: %s", strings.Join(missingInRO, ", "))
	}
	if len(missingInEN) > 0 {
		t.Errorf("keys missing in en locale: %s", strings.Join(missingInEN, ", "))
	}
}

func TestLocaleFormatVerbsParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, LangEN)
	ro := mustLoadLocaleMessages(t, LangRO)

	for key, value := range en {
		if got, want := strings.Count(ro[key], "%"), strings.Count(value, "%"); got != want {
			t.Errorf("key %s: ro has %d format markers, en has %d", key, got, want)
		}
	}
}

func mustLoadLocaleMessages(t *testing.T, language string) map[string]string {
	t.Helper()

	content, err := fs.ReadFile(embeddedLocales, "locales/"+language+".json")
	if err != nil {
		t.Fatalf("read locale %q: %v", language, err)
	}

	messages := map[string]string{}
	if err := json.Unmarshal(content, &messages); err != nil {
		t.Fatalf("parse locale %q: %v", language, err)
	}
	if len(messages) == 0 {
		t.Fatalf("locale %q is empty", language)
	}

	return messages
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
