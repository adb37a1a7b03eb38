package analysis

import (
	"reflect"
	"testing"
)

func TestResolveMode_Pure(t *testing.T) {
	first, err := ResolveMode(ModeQuick)
	if err != nil {
		t.Fatalf("resolve quick: %v", err)
	}
	second, err := ResolveMode(ModeQuick)
	if err != nil {
		t.Fatalf("resolve quick again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ResolveMode is not pure: %+v != %+v", first, second)
	}
}

func TestResolveMode_MarathonBudgetExceedsQuick(t *testing.T) {
	quick, err := ResolveMode(ModeQuick)
	if err != nil {
		t.Fatalf("resolve quick: %v", err)
	}
	marathon, err := ResolveMode(ModeMarathon)
	if err != nil {
		t.Fatalf("resolve marathon: %v", err)
	}
	if marathon.ThinkingBudget <= quick.ThinkingBudget {
		t.Fatalf("marathon budget %d should exceed quick budget %d", marathon.ThinkingBudget, quick.ThinkingBudget)
	}
	if marathon.Schema != SchemaExtended {
		t.Fatalf("marathon should select the extended schema, got %s", marathon.Schema)
	}
	if quick.Schema != SchemaBase {
		t.Fatalf("quick should select the base schema, got %s", quick.Schema)
	}
}

func TestResolveMode_QuickFavorsDeterminism(t *testing.T) {
	quick, _ := ResolveMode(ModeQuick)
	marathon, _ := ResolveMode(ModeMarathon)
	if quick.Temperature >= marathon.Temperature {
		t.Fatalf("quick temperature %v should be below marathon %v", quick.Temperature, marathon.Temperature)
	}
	if quick.ThinkingBudget != 0 {
		t.Fatalf("quick should carry no extended-reasoning budget, got %d", quick.ThinkingBudget)
	}
}

func TestResolveMode_UnknownFailsFast(t *testing.T) {
	_, err := ResolveMode(Mode("LUDICROUS"))
	if err == nil {
		t.Fatal("unknown mode should not resolve")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindConfig {
		t.Fatalf("unknown mode should be a configuration error, got %v", err)
	}
}
