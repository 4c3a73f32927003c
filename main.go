package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/df07/go-sequential-raytracer/pkg/bench"
	"github.com/df07/go-sequential-raytracer/pkg/core"
	"github.com/df07/go-sequential-raytracer/pkg/surface"
	"github.com/df07/go-sequential-raytracer/pkg/tracer"
)

const spotImageSize = 512

func main() {
	// Parse command line flags
	benchType := flag.String("bench", "singlet", "Bench to trace (see -help for the list)")
	rays := flag.Int("rays", 10000, "Number of bulk rays to trace")
	workers := flag.Int("workers", 0, "Worker goroutines per surface (0 = one per CPU)")
	outBase := flag.String("out", "output", "Base directory for spot diagrams")
	spot := flag.Bool("spot", true, "Write a spot diagram PNG per screen")
	verbose := flag.Bool("v", false, "Verbose logging (includes per-stage tracer output)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Sequential Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available benches:")
		fmt.Println("  singlet - Collimated beam through a spherical air-glass surface")
		fmt.Println("  mirror  - 45 degree flat fold onto a screen")
		fmt.Println("  relay   - Equiconvex lens focusing a collimated beam")
		fmt.Println("  tir     - Total internal reflection at a glass-air interface")
		fmt.Println()
		fmt.Println("Spot diagrams are saved to <out>/<bench>/spot_<screen>_<timestamp>.png")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	sys, err := createSystem(*benchType, *workers, &tracerLog{logger})
	if err != nil {
		logger.Fatalf("Bench setup failed: %v", err)
	}

	logger.Infof("Tracing bench %q with %d rays", *benchType, *rays)
	startTime := time.Now()
	if err := sys.Propagate(*rays); err != nil {
		logger.Fatalf("Propagation failed: %v", err)
	}
	elapsed := time.Since(startTime)

	stats := sys.Stats()
	logger.Infof("Traced %d rays through %d stages in %v", stats.Rays, stats.Stages, elapsed)
	logger.Infof("Status: %d active, %d vignetted, %d missed, %d parallel, %d absorbed",
		stats.Active, stats.Vignetted, stats.Missed, stats.Parallel, stats.Absorbed)
	logger.Infof("Power: generated %.4g W, delivered %.4g W",
		stats.GeneratedPower, stats.DeliveredPower)

	for i, screen := range sys.Screens() {
		st := screen.Stats()
		logger.Infof("Screen %d: %d hits, centroid (%.4g, %.4g) m, RMS radius %.4g m",
			i, st.Count, st.CentroidX, st.CentroidY, st.RMSRadius)
	}

	if !*spot {
		return
	}

	outputPath := outputDir(*outBase, *benchType)
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		logger.Fatalf("Creating output directory failed: %v", err)
	}

	// Create timestamped filenames
	timestamp := time.Now().Format("20060102_150405")
	for i, screen := range sys.Screens() {
		filename := filepath.Join(outputPath, fmt.Sprintf("spot_%d_%s.png", i, timestamp))
		if err := writeSpotDiagram(filename, screen.Captures(), screen.Stats()); err != nil {
			logger.Errorf("Spot diagram for screen %d failed: %v", i, err)
			continue
		}
		logger.Infof("Spot diagram saved as %s", filename)
	}
}

// tracerLog adapts logrus to the tracer's Printf-style logger. Tracer
// output is chatty, so it lands at debug level.
type tracerLog struct {
	log *logrus.Logger
}

func (t *tracerLog) Printf(format string, args ...interface{}) {
	t.log.Debugf(format, args...)
}

// createSystem builds a named bench configured with the given worker count
// and logger
func createSystem(benchType string, workers int, logger core.Logger) (*tracer.System, error) {
	sys, err := bench.Create(benchType)
	if err != nil {
		return nil, err
	}
	sys.Workers = workers
	sys.Logger = logger
	return sys, nil
}

// outputDir returns the per-bench output directory under the base directory
func outputDir(base, benchType string) string {
	return filepath.Join(base, benchType)
}

// writeSpotDiagram renders the screen's captures as a PNG spot diagram,
// centered on the centroid and scaled so the farthest hit lands at 90% of
// the half-width. Display rays are left out; they carry no power.
func writeSpotDiagram(filename string, captures []surface.CaptureRecord, stats surface.SpotStats) error {
	img := image.NewRGBA(image.Rect(0, 0, spotImageSize, spotImageSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	extent := 0.0
	for _, c := range captures {
		if !c.Hit || !c.Inside || c.Display {
			continue
		}
		dx := math.Abs(c.X - stats.CentroidX)
		dy := math.Abs(c.Y - stats.CentroidY)
		extent = math.Max(extent, math.Max(dx, dy))
	}
	if extent == 0 {
		extent = 1e-6 // all hits at the centroid, pick a nominal 1 micron window
	}
	scale := 0.9 * float64(spotImageSize/2) / extent

	// Centroid crosshair
	center := spotImageSize / 2
	axisColor := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for p := 0; p < spotImageSize; p++ {
		img.Set(p, center, axisColor)
		img.Set(center, p, axisColor)
	}

	for _, c := range captures {
		if !c.Hit || !c.Inside || c.Display {
			continue
		}
		px := center + int(math.Round((c.X-stats.CentroidX)*scale))
		py := center - int(math.Round((c.Y-stats.CentroidY)*scale))
		drawDot(img, px, py)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// drawDot paints a 3x3 marker; Set ignores out-of-bounds pixels
func drawDot(img *image.RGBA, px, py int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			img.Set(px+dx, py+dy, color.Black)
		}
	}
}
