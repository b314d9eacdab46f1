package modules

import (
	"context"
	"testing"
)

type fakeModule struct {
	name  string
	tools []Tool
	calls []string
}

func (m *fakeModule) Name() string        { return m.name }
func (m *fakeModule) Description() string { return "fake" }
func (m *fakeModule) APIVersion() string  { return "v0" }
func (m *fakeModule) Tools() []Tool       { return m.tools }

func (m *fakeModule) ExecuteTool(_ context.Context, name string, _ map[string]any) (string, error) {
	m.calls = append(m.calls, name)
	return "ok:" + name, nil
}

func TestRegistryAndFindTool(t *testing.T) {
	fake := &fakeModule{
		name: "fake",
		tools: []Tool{
			{Name: "do_thing", InputSchema: InputSchema{Type: "object", Properties: map[string]Property{}}},
		},
	}
	RegisterModule(fake)
	defer delete(registry, "fake")

	if _, ok := GetModule("fake"); !ok {
		t.Fatal("expected registered module")
	}

	mod, tool, ok := FindTool("do_thing")
	if !ok {
		t.Fatal("expected to find do_thing")
	}
	if mod.Name() != "fake" || tool.Name != "do_thing" {
		t.Errorf("found %s/%s, want fake/do_thing", mod.Name(), tool.Name)
	}

	if _, _, ok := FindTool("nonexistent"); ok {
		t.Error("expected not to find nonexistent tool")
	}
}

func TestRunValidatesBeforeDispatch(t *testing.T) {
	fake := &fakeModule{
		name: "fake",
		tools: []Tool{
			{
				Name: "needs_repo",
				InputSchema: InputSchema{
					Type:       "object",
					Properties: map[string]Property{"repo": {Type: "string"}},
					Required:   []string{"repo"},
				},
			},
		},
	}

	_, err := Run(context.Background(), fake, fake.tools[0], map[string]any{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(fake.calls) != 0 {
		t.Errorf("tool executed despite failed validation: %v", fake.calls)
	}

	text, err := Run(context.Background(), fake, fake.tools[0], map[string]any{"repo": "widget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok:needs_repo" {
		t.Errorf("unexpected result %q", text)
	}
}
