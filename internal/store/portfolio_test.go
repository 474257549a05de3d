// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"testing"

	"craftpress/internal/models"
)

// projectFixture creates the rows a project with images needs: an
// uploader, an author, two media objects, and the project itself.
func projectFixture(t *testing.T, db *sql.DB, slug string) (*models.PortfolioProject, []models.Media) {
	t.Helper()

	user, err := NewUserStore(db).Create("portfolio-test-user-"+slug, slug+"@store-test.local", "test-password", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users WHERE id = $1`, user.ID)
	})

	author, err := NewAuthorStore(db).Create(&models.Author{Name: "Portfolio Author", Slug: "portfolio-author-" + slug})
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	t.Cleanup(func() { cleanAuthors(t, db, author.Slug) })

	media := NewMediaStore(db)
	var files []models.Media
	for _, name := range []string{"cover", "gallery"} {
		m, err := media.Create(&models.Media{
			Filename:     name + ".jpg",
			OriginalName: name + ".jpg",
			ContentType:  "image/jpeg",
			SizeBytes:    1024,
			Bucket:       "test",
			S3Key:        "media/test/" + slug + "-" + name + ".jpg",
			UploaderID:   user.ID,
		})
		if err != nil {
			t.Fatalf("create media %s: %v", name, err)
		}
		files = append(files, *m)
	}

	proj, err := NewPortfolioStore(db).CreateProject(&models.PortfolioProject{
		Title:     "Fixture Project",
		Slug:      slug,
		AuthorID:  author.ID,
		Published: true,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM portfolio_projects WHERE id = $1`, proj.ID)
	})

	return proj, files
}

func TestPortfolioStoreListProjectsIncludesImages(t *testing.T) {
	db := testDB(t)
	s := NewPortfolioStore(db)

	proj, files := projectFixture(t, db, "store-list-images")

	// The cover is deliberately second by sort order.
	err := s.ReplaceImages(proj.ID, []models.ProjectImage{
		{ProjectID: proj.ID, MediaID: files[1].ID, SortOrder: 0, ImageType: models.ImageTypeGallery},
		{ProjectID: proj.ID, MediaID: files[0].ID, SortOrder: 1, ImageType: models.ImageTypeCover},
	})
	if err != nil {
		t.Fatalf("replace images: %v", err)
	}

	published := true
	projects, _, err := s.ListProjects(ListParams{Limit: 50}, nil, &published)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}

	var listed *models.PortfolioProject
	for i := range projects {
		if projects[i].ID == proj.ID {
			listed = &projects[i]
			break
		}
	}
	if listed == nil {
		t.Fatal("created project missing from listing")
	}

	if len(listed.Images) != 2 {
		t.Fatalf("listed images: got %d, want 2", len(listed.Images))
	}
	if listed.Images[0].MediaID != files[1].ID {
		t.Error("images not ordered by sort_order")
	}
	if listed.Images[1].ImageType != models.ImageTypeCover {
		t.Errorf("cover image type lost: got %q", listed.Images[1].ImageType)
	}
}

func TestPortfolioStoreReplaceImagesIsWholesale(t *testing.T) {
	db := testDB(t)
	s := NewPortfolioStore(db)

	proj, files := projectFixture(t, db, "store-replace-images")

	both := []models.ProjectImage{
		{ProjectID: proj.ID, MediaID: files[0].ID, SortOrder: 0, ImageType: models.ImageTypeCover},
		{ProjectID: proj.ID, MediaID: files[1].ID, SortOrder: 1, ImageType: models.ImageTypeGallery},
	}
	if err := s.ReplaceImages(proj.ID, both); err != nil {
		t.Fatalf("replace images: %v", err)
	}

	// Replacing with one image drops the other association.
	one := []models.ProjectImage{
		{ProjectID: proj.ID, MediaID: files[1].ID, SortOrder: 0, ImageType: models.ImageTypeGallery},
	}
	if err := s.ReplaceImages(proj.ID, one); err != nil {
		t.Fatalf("replace images: %v", err)
	}

	found, err := s.FindProject(proj.ID)
	if err != nil {
		t.Fatalf("find project: %v", err)
	}
	if len(found.Images) != 1 || found.Images[0].MediaID != files[1].ID {
		t.Errorf("images after replace: %+v", found.Images)
	}
}
