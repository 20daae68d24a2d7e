package fill

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/fillforge/pkg/dataset"
	"github.com/entrhq/fillforge/pkg/driver"
	"github.com/entrhq/fillforge/pkg/field"
	"github.com/entrhq/fillforge/pkg/typing"
)

func twoPersonas() []dataset.Dataset {
	return []dataset.Dataset{
		{
			ID:   "d1",
			Name: "Persona One",
			Data: map[field.SemanticType]string{
				field.TypeEmail:     "one@example.com",
				field.TypeFirstName: "Una",
				field.TypeLastName:  "Primo",
				field.TypeMessage:   "First persona message.",
			},
		},
		{
			ID:   "d2",
			Name: "Persona Two",
			Data: map[field.SemanticType]string{
				field.TypeEmail:     "two@example.com",
				field.TypeFirstName: "Duo",
				field.TypeLastName:  "Secondo",
				field.TypeMessage:   "Second persona message.",
			},
		},
	}
}

func newTestEngine(t *testing.T, seed []dataset.Dataset) (*Engine, *dataset.Store) {
	t.Helper()
	store := dataset.NewStore(dataset.StoreOptions{Seed: seed})
	store.SetRand(rand.New(rand.NewSource(1)))

	sim := typing.NewSimulator(nil)
	sim.SetRand(rand.New(rand.NewSource(1)))
	sim.SetSleep(func(time.Duration) {})

	eng, err := NewEngine(EngineConfig{Selector: store, Simulator: sim})
	require.NoError(t, err)
	return eng, store
}

func signupPage() (*driver.MemoryPage, map[string]*driver.MemoryControl) {
	controls := map[string]*driver.MemoryControl{
		"email":      driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Type: "email", Name: "email"}),
		"first_name": driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Name: "first_name"}),
		"last_name":  driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Name: "last_name"}),
		"message":    driver.NewMemoryControl(field.Descriptor{Kind: field.KindTextArea, Name: "message"}),
	}
	page := driver.NewMemoryPage("example.com",
		controls["email"], controls["first_name"], controls["last_name"], controls["message"])
	return page, controls
}

func TestFillAllSharesOnePersonaAcrossBatch(t *testing.T) {
	eng, store := newTestEngine(t, twoPersonas())
	page, controls := signupPage()

	res, err := eng.FillAll(page, Options{Mode: ModeInstant})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Filled)
	assert.Zero(t, res.Failed)

	persona, err := store.Get(res.DatasetID)
	require.NoError(t, err)

	wantEmail, _ := persona.Value(field.TypeEmail)
	wantFirst, _ := persona.Value(field.TypeFirstName)
	wantLast, _ := persona.Value(field.TypeLastName)
	wantMessage, _ := persona.Value(field.TypeMessage)

	assert.Equal(t, wantEmail, controls["email"].Val)
	assert.Equal(t, wantFirst, controls["first_name"].Val)
	assert.Equal(t, wantLast, controls["last_name"].Val)
	assert.Equal(t, wantMessage, controls["message"].Val)
}

func TestFillAllRotatesPersonasAcrossFills(t *testing.T) {
	eng, _ := newTestEngine(t, twoPersonas())

	pageA, _ := signupPage()
	first, err := eng.FillAll(pageA, Options{Mode: ModeInstant})
	require.NoError(t, err)

	pageB, _ := signupPage()
	second, err := eng.FillAll(pageB, Options{Mode: ModeInstant})
	require.NoError(t, err)

	// Same form shape, same origin: same fingerprint, different persona.
	assert.Equal(t, first.Fingerprint.Hash, second.Fingerprint.Hash)
	assert.NotEqual(t, first.DatasetID, second.DatasetID)
}

func TestFillAllSkipsIneligibleControls(t *testing.T) {
	eng, _ := newTestEngine(t, twoPersonas())

	ok := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Type: "email", Name: "email"})
	password := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Type: "password", Name: "password"})
	disabled := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Name: "nick", Disabled: true})
	readonly := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Name: "ref", ReadOnly: true})
	hidden := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Type: "hidden", Name: "csrf", Hidden: true})
	file := driver.NewMemoryControl(field.Descriptor{Kind: field.KindFile, Name: "avatar", Accept: "image/*"})

	page := driver.NewMemoryPage("example.com", ok, password, disabled, readonly, hidden, file)

	res, err := eng.FillAll(page, Options{Mode: ModeInstant})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Filled)
	assert.Equal(t, 5, res.Skipped)
	assert.Empty(t, password.Val)
	assert.Empty(t, disabled.Val)
	assert.Empty(t, readonly.Val)
	assert.Equal(t, "", hidden.Val)
	assert.NotEmpty(t, ok.Val)
}

func TestFillAllContinuesPastFieldFailures(t *testing.T) {
	eng, _ := newTestEngine(t, twoPersonas())

	a := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Type: "email", Name: "email"})
	bad := &failingControl{MemoryControl: *driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Name: "first_name"})}
	c := driver.NewMemoryControl(field.Descriptor{Kind: field.KindTextArea, Name: "message"})
	page := driver.NewMemoryPage("example.com", a, bad, c)

	res, err := eng.FillAll(page, Options{Mode: ModeInstant})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Filled, "batch continues after the failing field")
	assert.Equal(t, 1, res.Failed)
	assert.NotEmpty(t, c.Val, "fields after the failure are still filled")
}

// failingControl accepts focus but rejects every mutation.
type failingControl struct {
	driver.MemoryControl
}

func (f *failingControl) SetValue(string) error   { return driver.ErrDetached }
func (f *failingControl) InsertText(string) error { return driver.ErrDetached }

func TestFillAllSelectAndRadioAlwaysInstant(t *testing.T) {
	eng, _ := newTestEngine(t, []dataset.Dataset{{
		ID:   "d1",
		Data: map[field.SemanticType]string{field.TypeCountry: "Sweden"},
	}})

	sel := driver.NewMemorySelect(field.Descriptor{Kind: field.KindSelect, Name: "country"}, []string{"", "Norway", "Sweden"})
	radio := driver.NewMemoryRadio(field.Descriptor{Kind: field.KindRadio, Name: "plan"})
	page := driver.NewMemoryPage("example.com", sel, radio)

	// Animated mode must not route selects or radios through the simulator.
	res, err := eng.FillAll(page, Options{Mode: ModeAnimated, Typing: typing.PresetFast})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Filled)
	assert.Equal(t, "Sweden", sel.Val)
	assert.True(t, radio.Checked)
	assert.Zero(t, sel.EventCount("backspace"))
}

func TestFillAllFallbackValues(t *testing.T) {
	// Persona with no values at all: category defaults kick in, then the
	// generic placeholder for types without a default.
	eng, _ := newTestEngine(t, []dataset.Dataset{{ID: "sparse", Data: map[field.SemanticType]string{}}})

	email := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Type: "email", Name: "email"})
	unknown := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Name: "xzy9"})
	page := driver.NewMemoryPage("example.com", email, unknown)

	res, err := eng.FillAll(page, Options{Mode: ModeInstant})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Filled)
	assert.Equal(t, "test@example.com", email.Val)
	assert.Equal(t, "Test value", unknown.Val)
}

func TestFillAllAnimatedEndToEnd(t *testing.T) {
	eng, store := newTestEngine(t, twoPersonas())
	page, controls := signupPage()

	res, err := eng.FillAll(page, Options{Mode: ModeAnimated, Typing: typing.Config{TypoChance: 0, SpeedMultiplier: 1}})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Filled)

	persona, err := store.Get(res.DatasetID)
	require.NoError(t, err)
	wantEmail, _ := persona.Value(field.TypeEmail)

	email := controls["email"]
	assert.Equal(t, wantEmail, email.Val)
	// Animated mode types per keystroke: one input event per character.
	assert.Equal(t, len(wantEmail), email.EventCount("input"))
	assert.Equal(t, 1, email.EventCount("blur"))
}

func TestFillAllEmptyPage(t *testing.T) {
	eng, _ := newTestEngine(t, twoPersonas())
	page := driver.NewMemoryPage("example.com")

	res, err := eng.FillAll(page, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Filled)
	assert.Empty(t, res.DatasetID, "no dataset is consumed for a page without eligible controls")
}

func TestFillAllEmptyStore(t *testing.T) {
	eng, _ := newTestEngine(t, []dataset.Dataset{})
	page, _ := signupPage()

	_, err := eng.FillAll(page, Options{})
	assert.ErrorIs(t, err, dataset.ErrEmptyStore)
}

func TestFillField(t *testing.T) {
	eng, _ := newTestEngine(t, twoPersonas())

	ctrl := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Type: "email", Name: "email"})
	ok, err := eng.FillField("example.com", ctrl, Options{Mode: ModeInstant})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, []string{"one@example.com", "two@example.com"}, ctrl.Val)

	ineligible := driver.NewMemoryControl(field.Descriptor{Kind: field.KindText, Name: "x", Disabled: true})
	ok, err = eng.FillField("example.com", ineligible, Options{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewEngineRequiresSelector(t *testing.T) {
	_, err := NewEngine(EngineConfig{})
	assert.ErrorIs(t, err, ErrNoSelector)
}
