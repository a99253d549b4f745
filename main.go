package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbounds/internal/boundaries"
	"carbounds/internal/carconfig"
	"carbounds/internal/linmath"
	"carbounds/internal/logging"
)

const title = "carbounds"

// result holds the generated frames in image pixel coordinates, Y down.
type result struct {
	session *carconfig.Session
	size    boundaries.Size
	frames  [][]boundaries.PointSet
	centre  boundaries.Point
}

func main() {
	// glfw must stay on the main thread when -preview is used
	runtime.LockOSThread()

	var (
		sessionPath = flag.String("session", "", "capture session file (.yaml, .yml or .json)")
		logLevel    = flag.String("log-level", "info", "debug, info, warn or error")
		workers     = flag.Int("workers", 0, "frames generated in parallel (0 = GOMAXPROCS)")
		pngDir      = flag.String("png", "", "write one PNG per frame with the hitboxes drawn into this directory")
		preview     = flag.Bool("preview", false, "open a window showing the generated frames")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if *sessionPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := run(ctx, logger, *sessionPath, *workers)
	if err != nil {
		logger.Fatal("generating boundaries failed", zap.Error(err))
	}

	if *pngDir != "" {
		if err := writeFramePNGs(*pngDir, res); err != nil {
			logger.Fatal("writing frame images failed", zap.Error(err))
		}
		logger.Info("frame images written", zap.String("dir", *pngDir))
	}
	if *preview {
		if err := runPreview(res); err != nil {
			logger.Fatal("preview failed", zap.Error(err))
		}
	}
}

func run(ctx context.Context, logger *zap.Logger, sessionPath string, workers int) (*result, error) {
	s, err := carconfig.Load(sessionPath)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("car", s.Car))

	res, err := generate(ctx, logger, s, workers)
	if err != nil {
		return nil, err
	}

	points, err := carconfig.NewPoints(res.frames, res.centre)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(s.Output), 0o755); err != nil {
		return nil, err
	}
	if err := carconfig.Update(s.Output, carconfig.PointsKey, points); err != nil {
		return nil, fmt.Errorf("saving %s: %w", s.Output, err)
	}
	logger.Info("car config updated",
		zap.String("path", s.Output),
		zap.Int("frames", len(res.frames)),
		zap.Strings("regions", regionNames(s)),
	)
	return res, nil
}

// generate rotates every session region through all sprite frames.
func generate(ctx context.Context, logger *zap.Logger, s *carconfig.Session, workers int) (*result, error) {
	origin := s.Origin.Point()
	size := s.Size()
	pivot := boundaries.ToImageLocal(s.PivotScreen(), origin, size)

	g, err := boundaries.NewGenerator(pivot, s.Angle(),
		boundaries.WithLogger(logger),
		boundaries.WithWorkers(workers),
	)
	if err != nil {
		return nil, err
	}
	for _, r := range s.Regions {
		corners := boundaries.RelativeCorners(r.Rect(), origin, size)
		if err := g.AddPoints(r.Name, corners[:]...); err != nil {
			return nil, err
		}
	}

	n, err := s.FrameCount()
	if err != nil {
		return nil, err
	}
	if s.ProjectionAngle == nil {
		logger.Debug("using default projection angle", zap.Float64("fi", carconfig.DefaultProjectionAngle))
	}
	frames, err := g.Frames(ctx, n, s.Precision)
	if err != nil {
		return nil, err
	}

	// back from image-local (Y up) to image pixels (Y down)
	var zero boundaries.Point
	for _, frame := range frames {
		for _, set := range frame {
			for i, p := range set.Points {
				set.Points[i] = roundPoint(boundaries.ToScreen(p, zero, size), s.Precision)
			}
		}
	}
	return &result{
		session: s,
		size:    size,
		frames:  frames,
		centre:  roundPoint(boundaries.ToScreen(pivot, zero, size), s.Precision),
	}, nil
}

func roundPoint(p boundaries.Point, precision int) boundaries.Point {
	return boundaries.Point{X: linmath.Round(p.X, precision), Y: linmath.Round(p.Y, precision)}
}

func regionNames(s *carconfig.Session) []string {
	names := make([]string, len(s.Regions))
	for i, r := range s.Regions {
		names[i] = r.Name
	}
	return names
}
