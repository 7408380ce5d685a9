package formatter

import (
	"strings"
	"testing"

	"github.com/hanshat/infinitunes/internal/models"
	th "github.com/hanshat/infinitunes/internal/testing"
)

func testAlbum() *models.Album {
	return &models.Album{
		CatalogItem: models.CatalogItem{
			ItemID:         "album123",
			Name:           "Aashiqui 2",
			Type:           "album",
			Year:           "2013",
			PrimaryArtists: models.JoinedArtists("Mithoon, Ankit Tiwari"),
		},
		Songs: []models.Song{
			{
				CatalogItem: models.CatalogItem{
					ItemID:         "track1",
					Name:           "Tum Hi Ho",
					Year:           "2013",
					PrimaryArtists: models.JoinedArtists("Arijit Singh"),
				},
				Album:    "Aashiqui 2",
				Duration: 262,
				Language: "hindi",
			},
			{
				CatalogItem: models.CatalogItem{
					ItemID:         "track2",
					Name:           "Sunn Raha Hai",
					Year:           "2013",
					PrimaryArtists: models.JoinedArtists("Ankit Tiwari"),
				},
				Album:    "Aashiqui 2",
				Duration: 389,
				Language: "hindi",
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testAlbum())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Artists,Album,Duration,Year,Language") {
			t.Errorf("CSV missing headers, got: %s", output)
		}

		if !strings.Contains(output, "track1") {
			t.Errorf("CSV missing track1 ID")
		}
		if !strings.Contains(output, "Tum Hi Ho") {
			t.Errorf("CSV missing track1 title")
		}
		if !strings.Contains(output, "Arijit Singh") {
			t.Errorf("CSV missing track1 artist")
		}
		if !strings.Contains(output, "262") {
			t.Errorf("CSV missing track1 duration")
		}
	})

	t.Run("ExportToCSV decodes entities", func(t *testing.T) {
		album := testAlbum()
		album.Songs[0].Name = "Rock &amp; Roll"

		data, err := ExportToCSV(album)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), "Rock & Roll") {
			t.Errorf("CSV should decode HTML entities, got: %s", string(data))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(testAlbum(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)

			if !strings.Contains(output, "# Aashiqui 2") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(output, "**Artists**: Mithoon, Ankit Tiwari") {
				t.Errorf("Markdown missing artists")
			}
			if !strings.Contains(output, "**Year**: 2013") {
				t.Errorf("Markdown missing year")
			}
			if !strings.Contains(output, "**Tracks**: 2") {
				t.Errorf("Markdown missing track count")
			}

			if !strings.Contains(output, "## Tracks") {
				t.Errorf("Markdown missing tracks section")
			}
			if !strings.Contains(output, "1. Arijit Singh - Tum Hi Ho [4:22]") {
				t.Errorf("Markdown missing track1, got: %s", output)
			}
			if !strings.Contains(output, "2. Ankit Tiwari - Sunn Raha Hai [6:29]") {
				t.Errorf("Markdown missing track2")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(testAlbum(), "test_cover.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "![Cover](test_cover.jpg)") {
				t.Errorf("Markdown missing cover image reference")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testAlbum())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Album: Aashiqui 2") {
			t.Errorf("Text missing album name")
		}
		if !strings.Contains(output, "Tracks: 2") {
			t.Errorf("Text missing track count")
		}

		if !strings.Contains(output, "1. Arijit Singh - Tum Hi Ho") {
			t.Errorf("Text missing track1")
		}
		if !strings.Contains(output, "2. Ankit Tiwari - Sunn Raha Hai") {
			t.Errorf("Text missing track2")
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(testAlbum().CatalogItem)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, `"album123"`) {
			t.Errorf("JSON missing ID field")
		}
		if !strings.Contains(output, `"Aashiqui 2"`) {
			t.Errorf("JSON missing name field")
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		_, err := DownloadImage("")
		if err == nil {
			t.Error("DownloadImage with empty URL should return error")
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(testAlbum(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.TracksFile != "album123_tracks.csv" {
				t.Errorf("Expected tracks file 'album123_tracks.csv', got '%s'", result.TracksFile)
			}
			if result.MetadataFile != "album123_metadata.json" {
				t.Errorf("Expected metadata file 'album123_metadata.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)

			csvContent := th.MustReadFile(t, result.TracksFile)
			if !strings.Contains(csvContent, "ID,Title,Artists,Album,Duration,Year,Language") {
				t.Errorf("CSV missing headers")
			}
			if !strings.Contains(csvContent, "track1") || !strings.Contains(csvContent, "Tum Hi Ho") {
				t.Errorf("CSV missing track data")
			}

			metadataContent := th.MustReadFile(t, result.MetadataFile)
			if !strings.Contains(metadataContent, "album123") || !strings.Contains(metadataContent, "Aashiqui 2") {
				t.Errorf("Metadata JSON missing expected fields")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(testAlbum(), "custom_export")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.TracksFile != "custom_export_tracks.csv" {
				t.Errorf("Expected 'custom_export_tracks.csv', got '%s'", result.TracksFile)
			}
			if result.MetadataFile != "custom_export_metadata.json" {
				t.Errorf("Expected 'custom_export_metadata.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithDefaultDirectory", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownExport(testAlbum(), "", "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.Directory != "album123" {
				t.Errorf("Expected directory 'album123', got '%s'", result.Directory)
			}
			th.AssertDirExists(t, result.Directory)

			readmePath := result.Directory + "/README.md"
			th.AssertFileExists(t, readmePath)

			content := th.MustReadFile(t, readmePath)
			if !strings.Contains(content, "# Aashiqui 2") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(content, "1. Arijit Singh - Tum Hi Ho") {
				t.Errorf("Markdown missing track listing")
			}

			if result.CoverImage != "" {
				t.Errorf("Expected no cover image, got '%s'", result.CoverImage)
			}
		})

		t.Run("WithCustomDirectory", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownExport(testAlbum(), "custom_album", "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.Directory != "custom_album" {
				t.Errorf("Expected directory 'custom_album', got '%s'", result.Directory)
			}
			th.AssertDirExists(t, result.Directory)
			th.AssertFileExists(t, result.Directory+"/README.md")
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			filepath, err := WriteTextExport(testAlbum(), "")
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}

			if filepath != "album123_tracks.txt" {
				t.Errorf("Expected 'album123_tracks.txt', got '%s'", filepath)
			}

			th.AssertFileExists(t, filepath)

			content := th.MustReadFile(t, filepath)
			if !strings.Contains(content, "Album: Aashiqui 2") {
				t.Errorf("Text missing album name")
			}
			if !strings.Contains(content, "1. Arijit Singh - Tum Hi Ho") {
				t.Errorf("Text missing track listing")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			filepath, err := WriteTextExport(testAlbum(), "my_album.txt")
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}

			if filepath != "my_album.txt" {
				t.Errorf("Expected 'my_album.txt', got '%s'", filepath)
			}

			th.AssertFileExists(t, filepath)
		})
	})

	t.Run("WriteManifest", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		manifest := map[string]any{
			"album_id":     "album123",
			"total_tracks": 2,
			"succeeded":    2,
			"failed":       0,
		}

		if err := WriteManifest(manifest, "manifest.json"); err != nil {
			t.Fatalf("WriteManifest failed: %v", err)
		}

		th.AssertFileExists(t, "manifest.json")

		content := th.MustReadFile(t, "manifest.json")
		if !strings.Contains(content, `"album_id": "album123"`) {
			t.Errorf("Manifest missing album ID")
		}
		if !strings.Contains(content, `"total_tracks": 2`) {
			t.Errorf("Manifest missing track count")
		}
	})
}
