package resumeinfra_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumeinfra"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := resumeinfra.NewMemoryRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		err := repo.Save(ctx, resume.Enhancement{
			ID:        kernel.EnhancementID(fmt.Sprintf("id-%d", i)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	page, err := repo.List(ctx, kernel.PaginationOptions{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if page.Page.Total != 5 || page.Page.Pages != 3 || len(page.Items) != 2 {
		t.Fatalf("unexpected page %+v", page.Page)
	}
	if page.Items[0].ID != "id-4" {
		t.Fatalf("expected newest first, got %s", page.Items[0].ID)
	}

	last, _ := repo.List(ctx, kernel.PaginationOptions{Page: 3, PageSize: 2})
	if len(last.Items) != 1 || last.Items[0].ID != "id-0" {
		t.Fatalf("unexpected last page %+v", last.Items)
	}

	beyond, _ := repo.List(ctx, kernel.PaginationOptions{Page: 9, PageSize: 2})
	if !beyond.Empty {
		t.Fatal("expected an empty page past the end")
	}

	got, err := repo.FindByID(ctx, "id-2")
	if err != nil || got.ID != "id-2" {
		t.Fatalf("FindByID: %v %+v", err, got)
	}

	_, err = repo.FindByID(ctx, "missing")
	if !errx.Is(err, resume.ErrEnhancementNotFound()) {
		t.Fatalf("expected not found, got %v", err)
	}
}
