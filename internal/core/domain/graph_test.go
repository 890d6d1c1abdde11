package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/zerr"
)

func fileNode(id int64, deps ...domain.SourceObjectRef) domain.Node {
	return domain.Node{
		Ref:          domain.Ref(domain.KindFile, id),
		Object:       &domain.File{ID: id},
		Dependencies: deps,
	}
}

func TestGraph_AddNode(t *testing.T) {
	g := domain.NewGraph()
	n := fileNode(1)

	if err := g.AddNode(n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.AddNode(n)
	if err == nil {
		t.Fatal("expected error when adding duplicate node, got nil")
	}
	if !errors.Is(err, domain.ErrNodeAlreadyExists) {
		t.Errorf("expected ErrNodeAlreadyExists, got %v", err)
	}
	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if ref, ok := zErr.Metadata()["ref"].(string); !ok || ref != "file:1" {
		t.Errorf("expected metadata ref=file:1, got %v", zErr.Metadata()["ref"])
	}
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	a := domain.Node{
		Ref:          domain.Ref(domain.KindArtifact, 1),
		Object:       &domain.Artifact{ID: 1},
		Dependencies: []domain.SourceObjectRef{domain.Ref(domain.KindArtifact, 2)},
	}
	b := domain.Node{
		Ref:          domain.Ref(domain.KindArtifact, 2),
		Object:       &domain.Artifact{ID: 2},
		Dependencies: []domain.SourceObjectRef{domain.Ref(domain.KindArtifact, 1)},
	}
	if err := g.AddNode(a); err != nil {
		t.Fatalf("failed to add node a: %v", err)
	}
	if err := g.AddNode(b); err != nil {
		t.Fatalf("failed to add node b: %v", err)
	}

	err := g.Validate()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if cycle, ok := zErr.Metadata()["cycle"].(string); !ok || cycle != "artifact:1 -> artifact:2 -> artifact:1" {
		t.Errorf("unexpected cycle metadata: %v", zErr.Metadata()["cycle"])
	}
}

func TestGraph_Validate_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	if err := g.AddNode(fileNode(1, domain.Ref(domain.KindDataSource, 9))); err != nil {
		t.Fatalf("failed to add node: %v", err)
	}

	err := g.Validate()
	if !errors.Is(err, domain.ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
}

func TestGraph_Walk(t *testing.T) {
	g := domain.NewGraph()
	// tag -> file -> data source
	// Execution order: data source, file, tag
	ds := domain.Node{Ref: domain.Ref(domain.KindDataSource, 3), Object: &domain.DataSource{ID: 3}}
	file := fileNode(2, ds.Ref)
	tag := domain.Node{
		Ref:          domain.Ref(domain.KindTag, 1),
		Object:       &domain.Tag{ID: 1, FileID: 2},
		Dependencies: []domain.SourceObjectRef{file.Ref},
	}

	for _, n := range []domain.Node{tag, file, ds} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("failed to add %s: %v", n.Ref, err)
		}
	}

	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	executed := make([]string, 0, 3)
	for n := range g.Walk() {
		executed = append(executed, n.Ref.String())
	}

	want := []string{"data_source:3", "file:2", "tag:1"}
	if len(executed) != len(want) {
		t.Fatalf("expected %d nodes walked, got %d", len(want), len(executed))
	}
	for i := range want {
		if executed[i] != want[i] {
			t.Errorf("unexpected walk order: %v", executed)
			break
		}
	}
}

func TestGraph_Walk_Deterministic(t *testing.T) {
	build := func(order []int64) []string {
		g := domain.NewGraph()
		ds := domain.Ref(domain.KindDataSource, 1)
		if err := g.AddNode(domain.Node{Ref: ds, Object: &domain.DataSource{ID: 1}}); err != nil {
			t.Fatal(err)
		}
		for _, id := range order {
			if err := g.AddNode(fileNode(id, ds)); err != nil {
				t.Fatal(err)
			}
		}
		if err := g.Validate(); err != nil {
			t.Fatal(err)
		}
		var out []string
		for n := range g.Walk() {
			out = append(out, n.Ref.String())
		}
		return out
	}

	first := build([]int64{5, 3, 9, 1})
	second := build([]int64{9, 1, 5, 3})
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("walk order depends on insertion order: %v vs %v", first, second)
		}
	}
}

func TestGraph_DependentsAndClosure(t *testing.T) {
	g := domain.NewGraph()
	ds := domain.Ref(domain.KindDataSource, 1)
	f := domain.Ref(domain.KindFile, 2)
	a := domain.Ref(domain.KindArtifact, 3)
	for _, n := range []domain.Node{
		{Ref: ds, Object: &domain.DataSource{ID: 1}},
		{Ref: f, Object: &domain.File{ID: 2}, Dependencies: []domain.SourceObjectRef{ds}},
		{Ref: a, Object: &domain.Artifact{ID: 3}, Dependencies: []domain.SourceObjectRef{f}},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}

	if deps := g.Dependents(f); len(deps) != 1 || deps[0] != a {
		t.Errorf("unexpected dependents of %s: %v", f, deps)
	}

	closure := g.Closure(a)
	if len(closure) != 3 || closure[0] != ds || closure[1] != f || closure[2] != a {
		t.Errorf("unexpected closure: %v", closure)
	}
}
