package seeder

import (
	"testing"

	"talentflow/internal/domain/pipeline"
)

func TestDemoRequisitionModesAreValid(t *testing.T) {
	for _, it := range demoRequisitions {
		if _, ok := pipeline.ParseWorkflowMode(it.Mode); !ok {
			t.Errorf("requisition %q carries unknown workflow mode %q", it.Title, it.Mode)
		}
	}
}

func TestDemoRequisitionIDsAreDistinct(t *testing.T) {
	seen := make(map[string]string, len(demoRequisitions))
	for _, it := range demoRequisitions {
		if prev, dup := seen[it.ID]; dup {
			t.Errorf("id %s reused by %q and %q", it.ID, prev, it.Title)
		}
		seen[it.ID] = it.Title
	}
}
