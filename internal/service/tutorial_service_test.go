package service

import (
	"errors"
	"testing"

	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
)

func TestTutorialCreateNormalizesVideoType(t *testing.T) {
	db := openTestDB(t, "tutorial_create")
	svc := NewTutorialService(repository.NewTutorialRepository(db))

	tutorial, err := svc.Create(TutorialInput{
		Title:     " آموزش خرید ",
		VideoURL:  "https://www.aparat.com/v/demo",
		VideoType: " UPLOAD ",
		IsFree:    true,
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("create tutorial failed: %v", err)
	}
	if tutorial.Title != "آموزش خرید" {
		t.Fatalf("expected trimmed title, got %q", tutorial.Title)
	}
	if tutorial.VideoType != models.TutorialVideoTypeUpload {
		t.Fatalf("expected upload type, got %s", tutorial.VideoType)
	}

	tutorial, err = svc.Create(TutorialInput{
		Title:     "نوع ناشناخته",
		VideoURL:  "https://example.com/v",
		VideoType: "youtube",
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("create tutorial failed: %v", err)
	}
	if tutorial.VideoType != models.TutorialVideoTypeEmbed {
		t.Fatalf("expected fallback to embed, got %s", tutorial.VideoType)
	}
}

func TestTutorialCreateRejectsMissingFields(t *testing.T) {
	db := openTestDB(t, "tutorial_invalid")
	svc := NewTutorialService(repository.NewTutorialRepository(db))

	if _, err := svc.Create(TutorialInput{Title: " ", VideoURL: "https://example.com"}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected missing title rejected, got: %v", err)
	}
	if _, err := svc.Create(TutorialInput{Title: "عنوان", VideoURL: "  "}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected missing video url rejected, got: %v", err)
	}
}

func TestTutorialGetCountsViews(t *testing.T) {
	db := openTestDB(t, "tutorial_views")
	svc := NewTutorialService(repository.NewTutorialRepository(db))

	tutorial, err := svc.Create(TutorialInput{
		Title:    "شمارش بازدید",
		VideoURL: "https://example.com/v",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create tutorial failed: %v", err)
	}

	viewed, err := svc.Get(tutorial.ID, true)
	if err != nil {
		t.Fatalf("get tutorial failed: %v", err)
	}
	if viewed.ViewCount != 1 {
		t.Fatalf("expected view count 1, got %d", viewed.ViewCount)
	}

	// 管理端读取不累加
	again, err := svc.Get(tutorial.ID, false)
	if err != nil {
		t.Fatalf("get tutorial failed: %v", err)
	}
	if again.ViewCount != 1 {
		t.Fatalf("expected view count unchanged, got %d", again.ViewCount)
	}
}

func TestTutorialGetNotFound(t *testing.T) {
	db := openTestDB(t, "tutorial_missing")
	svc := NewTutorialService(repository.NewTutorialRepository(db))

	if _, err := svc.Get(999, true); !errors.Is(err, ErrTutorialNotFound) {
		t.Fatalf("expected tutorial not found, got: %v", err)
	}
}

func TestTutorialListFilters(t *testing.T) {
	db := openTestDB(t, "tutorial_list")
	svc := NewTutorialService(repository.NewTutorialRepository(db))

	seed := []TutorialInput{
		{Title: "رایگان فعال", VideoURL: "https://example.com/1", IsFree: true, IsActive: true},
		{Title: "پولی فعال", VideoURL: "https://example.com/2", IsFree: false, IsActive: true},
		{Title: "رایگان غیرفعال", VideoURL: "https://example.com/3", IsFree: true, IsActive: false},
	}
	for _, input := range seed {
		if _, err := svc.Create(input); err != nil {
			t.Fatalf("create tutorial failed: %v", err)
		}
	}

	active, total, err := svc.List(repository.TutorialListFilter{OnlyActive: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(active) != 2 {
		t.Fatalf("expected 2 active tutorials, got total=%d len=%d", total, len(active))
	}

	free, total, err := svc.List(repository.TutorialListFilter{OnlyActive: true, OnlyFree: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(free) != 1 || free[0].Title != "رایگان فعال" {
		t.Fatalf("expected single free active tutorial, got total=%d %+v", total, free)
	}
}
