package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kozaktomas/photopdf/internal/album"
	"github.com/kozaktomas/photopdf/internal/book"
	"github.com/kozaktomas/photopdf/internal/config"
	"github.com/kozaktomas/photopdf/internal/layout"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file-or-folder> [file-or-folder...]",
	Short: "Render photos into a paginated PDF document",
	Long: `Render photos from files or folders into a single PDF document.

Folder contents are ordered by filename using numeric-aware sorting
(photo2.jpg comes before photo10.jpg); explicitly listed files keep the
order they were given in. Photos are scaled to fit their page cell without
distortion and can be rotated in 90-degree steps.

Example:
  photopdf generate /path/to/photos -o album.pdf
  photopdf generate -r /path/to/photos --page a4-landscape --grid 2x2
  photopdf generate a.jpg b.jpg --rotate 0=90,1=270 --dpi 300`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "album.pdf", "Output PDF file")
	generateCmd.Flags().String("page", "", "Page preset (a4, a4-landscape, a5, a3, letter, ...)")
	generateCmd.Flags().String("grid", "", "Photos per page as COLSxROWS (e.g. 2x2)")
	generateCmd.Flags().Int("dpi", 0, "Output density in dots per inch")
	generateCmd.Flags().StringSlice("rotate", nil, "Clockwise rotations as INDEX=DEGREES (e.g. 0=90,2=180)")
	generateCmd.Flags().BoolP("recursive", "r", false, "Search folders recursively")
}

// isImageFile checks if a file has an image extension the renderer can decode.
func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	supported := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".bmp":  true,
		".tif":  true,
		".tiff": true,
		".webp": true,
	}
	return supported[ext]
}

// listFolderImages collects image files from a folder, sorted by filename with
// numeric-aware collation so counter-named photos keep their capture order.
func listFolderImages(folder string, recursive bool) ([]string, error) {
	var files []string
	if recursive {
		err := filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isImageFile(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder %s: %w", folder, err)
		}
	} else {
		dirEntries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
		}
		for _, entry := range dirEntries {
			if !entry.IsDir() && isImageFile(entry.Name()) {
				files = append(files, filepath.Join(folder, entry.Name()))
			}
		}
	}

	collate.New(language.Und, collate.Numeric).SortStrings(files)
	return files, nil
}

// collectImageFiles resolves the command arguments into an ordered file list.
// Explicit files keep the argument order; folders contribute their images in
// collated filename order.
func collectImageFiles(paths []string, recursive bool) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if info.IsDir() {
			folderFiles, err := listFolderImages(path, recursive)
			if err != nil {
				return nil, err
			}
			files = append(files, folderFiles...)
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// parseRotations parses INDEX=DEGREES rotation assignments.
func parseRotations(specs []string) (map[int]int, error) {
	rotations := make(map[int]int, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid rotation %q: expected INDEX=DEGREES", spec)
		}
		index, err := strconv.Atoi(parts[0])
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid rotation index %q", parts[0])
		}
		degrees, err := strconv.Atoi(parts[1])
		if err != nil || degrees%90 != 0 || degrees < 0 || degrees > 270 {
			return nil, fmt.Errorf("invalid rotation %q: degrees must be 0, 90, 180 or 270", spec)
		}
		rotations[index] = degrees
	}
	return rotations, nil
}

// loadAlbum reads the files into a fresh album and applies rotations.
func loadAlbum(files []string, rotations map[int]int) (*album.Album, error) {
	alb := album.New()
	for _, path := range files {
		data, err := os.ReadFile(path) //nolint:gosec // paths come from the command line
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		alb.Append(album.Blob{Name: filepath.Base(path), Data: data})
	}

	for index, degrees := range rotations {
		for i := 0; i < degrees/90; i++ {
			if err := alb.Rotate(index); err != nil {
				return nil, fmt.Errorf("cannot rotate photo %d: %w", index, err)
			}
		}
	}
	return alb, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	output := mustGetString(cmd, "output")
	recursive := mustGetBool(cmd, "recursive")

	cfg := config.Load()
	pageName := mustGetString(cmd, "page")
	if pageName == "" {
		pageName = cfg.Output.Page
	}
	geom, err := cfg.Geometry(pageName, mustGetString(cmd, "grid"))
	if err != nil {
		return err
	}

	rotations, err := parseRotations(mustGetStringSlice(cmd, "rotate"))
	if err != nil {
		return err
	}

	files, err := collectImageFiles(args, recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No photos found, nothing to generate.")
		return nil
	}

	alb, err := loadAlbum(files, rotations)
	if err != nil {
		return err
	}

	entries, err := alb.BeginRun()
	if err != nil {
		return err
	}
	defer alb.EndRun()

	dpi := mustGetInt(cmd, "dpi")
	if dpi <= 0 {
		dpi = cfg.Output.DPI
	}

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetDescription("Rendering photos"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	gen := book.NewGenerator(dpi, cfg.Output.JPEGQuality)
	gen.Progress = func(done, total int) {
		_ = bar.Add(1)
	}

	var buf bytes.Buffer
	report, err := gen.Generate(cmd.Context(), entries, geom, &buf)
	if err != nil {
		if errors.Is(err, layout.ErrNoEntries) {
			fmt.Println("No photos found, nothing to generate.")
			return nil
		}
		return err
	}

	if err := os.WriteFile(output, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("\nWrote %s: %d photos on %d pages (%s, %s at %d DPI)\n",
		output, report.PhotoCount, report.PageCount,
		strings.ToLower(pageName), geomGridLabel(geom), dpi)
	for _, warning := range report.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	return nil
}

// geomGridLabel formats a geometry's grid for the summary line.
func geomGridLabel(geom layout.PageGeometry) string {
	return fmt.Sprintf("%dx%d grid", geom.Columns, geom.Rows)
}
