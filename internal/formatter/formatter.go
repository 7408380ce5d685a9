// package formatter provides functions to export album track listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/hanshat/infinitunes/internal/meta"
	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/shared"
)

// ExportToCSV converts an album to CSV format with columns: ID, Title, Artists, Album, Duration, Year, Language
func ExportToCSV(album *models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artists", "Album", "Duration", "Year", "Language"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range album.Songs {
		record := []string{
			song.ItemID,
			shared.DecodeEntities(song.Name),
			meta.ResolveArtists(song.CatalogItem),
			shared.DecodeEntities(song.Album),
			strconv.Itoa(song.Duration),
			song.Year,
			song.Language,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an album to Markdown format with optional cover image
func ExportToMarkdown(album *models.Album, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", shared.DecodeEntities(album.Name)))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if artists := meta.ResolveArtists(album.CatalogItem); artists != "" {
		buf.WriteString(fmt.Sprintf("**Artists**: %s\n", artists))
	}
	if album.Year != "" {
		buf.WriteString(fmt.Sprintf("**Year**: %s\n", album.Year))
	}
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(album.Songs)))

	buf.WriteString("## Tracks\n\n")
	for i, song := range album.Songs {
		duration := meta.FormatDuration(song.Duration)
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, meta.ResolveArtists(song.CatalogItem), shared.DecodeEntities(song.Name), duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts an album to plain text format
func ExportToText(album *models.Album) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Album: %s\n", shared.DecodeEntities(album.Name)))
	if artists := meta.ResolveArtists(album.CatalogItem); artists != "" {
		buf.WriteString(fmt.Sprintf("Artists: %s\n", artists))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(album.Songs)))

	for i, song := range album.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, meta.ResolveArtists(song.CatalogItem), shared.DecodeEntities(song.Name)))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of album metadata (without tracks)
func ToMetadataJSON(item models.CatalogItem) ([]byte, error) {
	return shared.MarshalJSON(item, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports an album to CSV format with accompanying metadata JSON file.
//
// Defaults to the album ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(album *models.Album, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = album.ItemID
	}

	csvData, err := ExportToCSV(album)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(album.CatalogItem)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports an album to Markdown format in a dedicated directory.
//
// Directory name defaults to the album ID.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(album *models.Album, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = album.ItemID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(album, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports an album to plain text format.
//
// Defaults to {album.ItemID}_tracks.txt as the filename.
func WriteTextExport(album *models.Album, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_tracks.txt", album.ItemID)
	}

	textData, err := ExportToText(album)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// WriteManifest writes a JSON manifest describing a completed bulk operation.
func WriteManifest(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
