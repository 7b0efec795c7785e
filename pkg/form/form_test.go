package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynamicform/pkg/form"
	"github.com/goliatone/go-dynamicform/pkg/formconfig"
)

func signupConfig() formconfig.FormConfig {
	return formconfig.FormConfig{
		Title: "Sign Up",
		Sections: []formconfig.Section{
			{
				Title: "Account",
				Fields: []formconfig.Field{
					{Name: "name", Label: "Name", Kind: formconfig.KindText},
					{Name: "email", Label: "Email", Kind: formconfig.KindEmail},
					{Name: "age", Label: "Age", Kind: formconfig.KindNumber},
					{Name: "subscribed", Label: "Subscribed", Kind: formconfig.KindSwitch},
				},
			},
			{
				Title: "Friends",
				Fields: []formconfig.Field{
					{Name: "friends", Label: "Friends", Kind: formconfig.KindArray, ItemFields: []formconfig.Field{
						{Name: "name", Label: "Name", Kind: formconfig.KindText},
						{Name: "age", Label: "Age", Kind: formconfig.KindNumber},
					}},
				},
			},
		},
	}
}

func TestNew_DefaultValues(t *testing.T) {
	c := form.New(signupConfig())
	defer c.Close()

	want := map[string]any{
		"name":       "",
		"email":      "",
		"age":        float64(0),
		"subscribed": false,
		"friends":    []map[string]any{{"name": "", "age": float64(0)}},
	}
	if diff := cmp.Diff(want, c.Values()); diff != "" {
		t.Fatalf("default values mismatch (-want +got):\n%s", diff)
	}
	if got := c.State(); got != form.StateEditing {
		t.Fatalf("state = %q", got)
	}
	if got := len(c.RowIDs("friends")); got != 1 {
		t.Fatalf("expected one row identity, got %d", got)
	}
}

func TestNew_InitialDataShallowMerge(t *testing.T) {
	c := form.New(signupConfig(), form.WithInitialData(map[string]any{
		"name": "Ada",
		"friends": []map[string]any{
			{"name": "Grace", "age": float64(42)},
			{"name": "Alan", "age": float64(41)},
		},
	}))
	defer c.Close()

	values := c.Values()
	if values["name"] != "Ada" {
		t.Errorf("name = %v", values["name"])
	}
	if values["email"] != "" {
		t.Errorf("untouched defaults should survive, email = %v", values["email"])
	}
	rows := values["friends"].([]map[string]any)
	if len(rows) != 2 {
		t.Fatalf("initial array should replace the default row wholesale, got %d rows", len(rows))
	}
	if got := len(c.RowIDs("friends")); got != 2 {
		t.Fatalf("row identities should cover initial rows, got %d", got)
	}
}

func TestSetValue_TopLevelAndRowPaths(t *testing.T) {
	c := form.New(signupConfig())
	defer c.Close()

	c.SetValue("name", "Ada")
	c.SetValue("friends.0.name", "Grace")
	c.SetValue("friends.5.name", "out of range")

	values := c.Values()
	if values["name"] != "Ada" {
		t.Errorf("name = %v", values["name"])
	}
	rows := values["friends"].([]map[string]any)
	if rows[0]["name"] != "Grace" {
		t.Errorf("row value = %v", rows[0]["name"])
	}
}

func TestAppendAndRemoveRow_IdentityStability(t *testing.T) {
	c := form.New(signupConfig())
	defer c.Close()

	c.AppendRow("friends")
	c.AppendRow("friends")
	ids := c.RowIDs("friends")
	if len(ids) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ids))
	}

	c.SetValue("friends.1.name", "Grace")
	c.RemoveRow("friends", 0)

	after := c.RowIDs("friends")
	if len(after) != 2 {
		t.Fatalf("expected 2 rows after removal, got %d", len(after))
	}
	if after[0] != ids[1] || after[1] != ids[2] {
		t.Errorf("surviving rows must keep their identities: before %v after %v", ids, after)
	}

	rows := c.Values()["friends"].([]map[string]any)
	if rows[0]["name"] != "Grace" {
		t.Errorf("surviving row lost its value: %v", rows[0])
	}

	// Out-of-range removals are ignored.
	c.RemoveRow("friends", 99)
	if got := len(c.RowIDs("friends")); got != 2 {
		t.Fatalf("row count changed on out-of-range removal: %d", got)
	}
}

func TestSubmit_InvalidBlocksCallback(t *testing.T) {
	calls := 0
	c := form.New(signupConfig(), form.WithSubmitHandler(func(context.Context, map[string]any) error {
		calls++
		return nil
	}))
	defer c.Close()

	err := c.Submit(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if calls != 0 {
		t.Fatalf("callback invoked %d times on invalid submit", calls)
	}

	errs := c.Errors()
	if msg, _ := errs.Field("name"); msg != "Required" {
		t.Errorf("name error = %q", msg)
	}
	if msg, _ := errs.Field("email"); msg != "Required" {
		t.Errorf("email error = %q", msg)
	}
	if msg, _ := errs.Field("friends.0.name"); msg != "Required" {
		t.Errorf("row error = %q", msg)
	}
	if got := c.State(); got != form.StateEditing {
		t.Fatalf("state after invalid submit = %q", got)
	}
}

func fillValid(c *form.Controller) {
	c.SetValue("name", "Ada")
	c.SetValue("email", "ada@example.com")
	c.SetValue("age", float64(36))
	c.SetValue("friends.0.name", "Grace")
	c.SetValue("friends.0.age", float64(42))
}

func TestSubmit_Success(t *testing.T) {
	var received map[string]any
	c := form.New(signupConfig(), form.WithSubmitHandler(func(_ context.Context, values map[string]any) error {
		received = values
		return nil
	}))
	defer c.Close()

	fillValid(c)
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if received["name"] != "Ada" {
		t.Errorf("callback values = %v", received)
	}
	if len(c.Errors()) != 0 {
		t.Errorf("errors should be clear after valid submit: %v", c.Errors())
	}
	if got := c.State(); got != form.StateEditing {
		t.Fatalf("state = %q", got)
	}
}

func TestSubmit_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	c := form.New(signupConfig(), form.WithSubmitHandler(func(context.Context, map[string]any) error {
		close(started)
		<-release
		return nil
	}))
	defer c.Close()

	fillValid(c)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := c.Submit(context.Background()); err != nil {
			t.Errorf("first submit: %v", err)
		}
	}()

	<-started
	if got := c.SubmitLabel(); got != "Submitting..." {
		t.Errorf("label while in flight = %q", got)
	}
	if err := c.Submit(context.Background()); !errors.Is(err, form.ErrSubmitInFlight) {
		t.Errorf("second submit err = %v, want ErrSubmitInFlight", err)
	}

	close(release)
	wg.Wait()

	if got := c.SubmitLabel(); got != "Submit" {
		t.Errorf("label after settle = %q", got)
	}
}

func TestSubmit_CallbackErrorAndPanic(t *testing.T) {
	boom := errors.New("backend down")
	c := form.New(signupConfig(), form.WithSubmitHandler(func(context.Context, map[string]any) error {
		return boom
	}))
	defer c.Close()

	fillValid(c)
	if err := c.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want callback error", err)
	}
	if got := c.State(); got != form.StateEditing {
		t.Fatalf("state after failed callback = %q", got)
	}

	p := form.New(signupConfig(), form.WithSubmitHandler(func(context.Context, map[string]any) error {
		panic("kaboom")
	}))
	defer p.Close()

	fillValid(p)
	if err := p.Submit(context.Background()); err == nil {
		t.Fatal("panicking callback should surface as error")
	}
}

func TestSubmit_CloseIgnoresLateSettle(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	c := form.New(signupConfig(), form.WithSubmitHandler(func(context.Context, map[string]any) error {
		close(started)
		<-release
		return nil
	}))

	fillValid(c)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()

	<-started
	c.Close()
	close(release)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("submit did not settle")
	}

	if got := c.State(); got == form.StateEditing {
		t.Fatal("late settle should not write state after Close")
	}
}

func TestValidateOnChange(t *testing.T) {
	c := form.New(signupConfig(), form.WithValidateOnChange())
	defer c.Close()

	c.SetValue("email", "nope")
	if msg, _ := c.Errors().Field("email"); msg != "Please enter a valid email address" {
		t.Fatalf("email error = %q", msg)
	}

	c.SetValue("email", "ada@example.com")
	if _, failed := c.Errors().Field("email"); failed {
		t.Fatal("error should clear once the leaf is valid")
	}

	c.SetValue("friends.0.age", "not a number")
	if msg, _ := c.Errors().Field("friends.0.age"); msg != "Must be a number" {
		t.Fatalf("row error = %q", msg)
	}
}

func TestReset(t *testing.T) {
	c := form.New(signupConfig(), form.WithInitialData(map[string]any{"name": "Ada"}))
	defer c.Close()

	c.SetValue("name", "changed")
	c.AppendRow("friends")
	_ = c.Submit(context.Background())

	c.Reset()

	values := c.Values()
	if values["name"] != "Ada" {
		t.Errorf("reset should restore initial data, name = %v", values["name"])
	}
	if got := len(values["friends"].([]map[string]any)); got != 1 {
		t.Errorf("reset should restore default rows, got %d", got)
	}
	if len(c.Errors()) != 0 {
		t.Errorf("reset should clear errors: %v", c.Errors())
	}
}

func TestCancelInvokesHandler(t *testing.T) {
	called := false
	c := form.New(signupConfig(), form.WithCancelHandler(func() { called = true }))
	defer c.Close()

	c.Cancel()
	if !called {
		t.Fatal("cancel handler not invoked")
	}
}

func TestSubmitLabelOverride(t *testing.T) {
	c := form.New(signupConfig(), form.WithSubmitLabel("Create Account"))
	defer c.Close()

	if got := c.SubmitLabel(); got != "Create Account" {
		t.Fatalf("label = %q", got)
	}
}
