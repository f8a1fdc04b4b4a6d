package export

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"spacecore/internal/blob"
	"spacecore/internal/infra/persistence/memory"
	"spacecore/pkg/domain"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore(nil)
	if err := store.ImportState(memory.DefaultSnapshot()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}

func TestBuildDumpCoversEveryCollection(t *testing.T) {
	store := seededStore(t)
	var doc Document
	err := store.View(context.Background(), func(view domain.TransactionView) error {
		doc = BuildDump(view)
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	entities := domain.EntityTypes()
	if len(doc.Collections) != len(entities) {
		t.Fatalf("expected %d collections, got %d", len(entities), len(doc.Collections))
	}
	for i, col := range doc.Collections {
		if col.Entity != entities[i] {
			t.Fatalf("collection %d out of order: %s", i, col.Entity)
		}
		specs := domain.Schema(col.Entity)
		if len(col.Fields) != len(specs) {
			t.Fatalf("%s fields mismatch: %d vs %d", col.Entity, len(col.Fields), len(specs))
		}
		for _, record := range col.Records {
			if len(record) != len(specs) {
				t.Fatalf("%s record width mismatch", col.Entity)
			}
		}
	}
	members := doc.Collections[0]
	if len(members.Records) != 2 || members.Records[0][0] != "member-aisha" {
		t.Fatalf("members must keep insertion order, got %+v", members.Records)
	}
}

func TestBuildTemplateEmitsPlaceholders(t *testing.T) {
	doc := BuildTemplate()
	if doc.Kind != KindTemplate {
		t.Fatalf("kind = %s", doc.Kind)
	}
	for _, col := range doc.Collections {
		if len(col.Records) != 1 {
			t.Fatalf("%s must have exactly one placeholder row", col.Entity)
		}
		for i, spec := range domain.Schema(col.Entity) {
			if col.Records[0][i] != domain.Placeholder(spec) {
				t.Fatalf("%s.%s placeholder mismatch", col.Entity, spec.Name)
			}
		}
	}
}

func TestRenderCSVSections(t *testing.T) {
	store := seededStore(t)
	var doc Document
	_ = store.View(context.Background(), func(view domain.TransactionView) error {
		doc = BuildDump(view)
		return nil
	})
	payload, err := Render(doc, FormatCSV)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(payload)
	for _, entity := range domain.EntityTypes() {
		if !strings.Contains(text, "#,"+string(entity)+"\n") {
			t.Fatalf("missing section marker for %s", entity)
		}
	}
	if !strings.Contains(text, "member-aisha") {
		t.Fatalf("missing member row")
	}
	if !strings.Contains(text, "\n\n#,desk\n") {
		t.Fatalf("sections must be separated by a blank line")
	}

	if _, err := Render(doc, Format("xml")); err == nil {
		t.Fatalf("unknown format must fail")
	}
}

func waitForJob(t *testing.T, w *Worker, id string) Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := w.Get(id)
		if !ok {
			t.Fatalf("job %s disappeared", id)
		}
		if job.Status == StatusSucceeded || job.Status == StatusFailed {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", id)
	return Job{}
}

func TestWorkerProcessesDumpAndTemplate(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	blobs := blob.NewMemory()
	audit := &MemoryAuditLog{}

	w := NewWorker(store, blobs, audit)
	w.Start()
	defer func() { _ = w.Stop(context.Background()) }()

	queued, err := w.Enqueue(ctx, Input{Kind: KindDump, Formats: []Format{FormatJSON, FormatCSV}, RequestedBy: "ops"})
	if err != nil {
		t.Fatalf("enqueue dump: %v", err)
	}
	job := waitForJob(t, w, queued.ID)
	if job.Status != StatusSucceeded {
		t.Fatalf("dump job failed: %s", job.Error)
	}
	if len(job.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(job.Artifacts))
	}
	for _, artifact := range job.Artifacts {
		info, rc, err := blobs.Get(ctx, artifact.Key)
		if err != nil {
			t.Fatalf("artifact %s missing from blob store: %v", artifact.Key, err)
		}
		payload, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read artifact: %v", err)
		}
		if int64(len(payload)) != artifact.SizeBytes || info.Size != artifact.SizeBytes {
			t.Fatalf("artifact size mismatch for %s", artifact.Key)
		}
		if info.ContentType != artifact.ContentType {
			t.Fatalf("content type mismatch for %s", artifact.Key)
		}
	}

	tmpl, err := w.Enqueue(ctx, Input{Kind: KindTemplate, RequestedBy: "ops"})
	if err != nil {
		t.Fatalf("enqueue template: %v", err)
	}
	job = waitForJob(t, w, tmpl.ID)
	if job.Status != StatusSucceeded {
		t.Fatalf("template job failed: %s", job.Error)
	}
	if len(job.Artifacts) != 1 || job.Artifacts[0].Format != FormatJSON {
		t.Fatalf("template must default to one json artifact, got %+v", job.Artifacts)
	}

	actions := map[string]int{}
	for _, entry := range audit.Entries() {
		actions[entry.Action]++
	}
	if actions["export_requested"] != 2 || actions["export_completed"] != 2 {
		t.Fatalf("unexpected audit trail: %+v", actions)
	}
}

func TestEnqueueValidation(t *testing.T) {
	w := NewWorker(memory.NewStore(nil), blob.NewMemory(), nil)
	if _, err := w.Enqueue(context.Background(), Input{Kind: Kind("everything")}); err == nil {
		t.Fatalf("unknown kind must be rejected")
	}
	if _, err := w.Enqueue(context.Background(), Input{Kind: KindDump, Formats: []Format{Format("xml")}}); err == nil {
		t.Fatalf("unknown format must be rejected")
	}
}
