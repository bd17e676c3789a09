package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"plotgeom/internal/models"
	"plotgeom/pkg/config"
	"plotgeom/pkg/imagedata"
	"plotgeom/pkg/legend"
	"plotgeom/pkg/mesh"
	"plotgeom/pkg/profile"
	"plotgeom/pkg/readout"
	"plotgeom/pkg/stl"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  %s profile -image FILE -mode hline|vline|line [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s mesh -shape box|cylinder|hexagon -output FILE [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s init-config [-config FILE]\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "profile":
		err = runProfile(os.Args[2:])
	case "mesh":
		err = runMesh(os.Args[2:])
	case "init-config":
		fs := flag.NewFlagSet("init-config", flag.ExitOnError)
		configPath := fs.String("config", "plotgeom.yaml", "Configuration file to create")
		fs.Parse(os.Args[2:])
		if err = config.CreateDefaultConfigFile(*configPath); err == nil {
			fmt.Printf("Default configuration written to %s\n", *configPath)
		}
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func runProfile(args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	configPath := fs.String("config", "plotgeom.yaml", "Configuration file")
	imagePath := fs.String("image", "", "JPEG or PNG image to profile")
	mode := fs.String("mode", "hline", "Profile mode: hline, vline or line")
	x0 := fs.Float64("x0", 0, "Start x in plot coordinates (vline position)")
	y0 := fs.Float64("y0", 0, "Start y in plot coordinates (hline position)")
	x1 := fs.Float64("x1", 0, "End x of a free line")
	y1 := fs.Float64("y1", 0, "End y of a free line")
	width := fs.Int("width", -1, "Line width in pixels (default from config)")
	probe := fs.Float64("probe", -1, "Report the profile sample closest to this index")
	fs.Parse(args)

	if *imagePath == "" {
		fs.Usage()
		return fmt.Errorf("missing -image")
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	img, err := imagedata.Load(*imagePath)
	if err != nil {
		return err
	}
	rows, cols := img.Dims()
	if cfg.Output.Verbose {
		fmt.Printf("Loaded %s: %d rows x %d columns\n", *imagePath, rows, cols)
	}

	plot := newConsolePlot(img)
	tool := profile.NewTool(plot, plot, plot)
	tool.ClipOverlay = cfg.Profile.ClipOverlay
	if err := tool.SetOverlayColor(cfg.Profile.OverlayColor); err != nil {
		return err
	}
	w := cfg.Profile.LineWidth
	if *width >= 0 {
		w = *width
	}
	if err := tool.SetLineWidth(w); err != nil {
		return err
	}

	switch *mode {
	case "hline":
		tool.SetMode(profile.HLine)
	case "vline":
		tool.SetMode(profile.VLine)
	case "line":
		tool.SetMode(profile.Line)
	default:
		return fmt.Errorf("unknown profile mode %q", *mode)
	}

	legends := legend.New[consolePlot]()
	legends.SetPlot(plot)
	plot.legends = legends

	start := time.Now()
	ev := profile.Event{
		Kind:   profile.DrawingFinished,
		Points: [2]models.Point{{X: *x0, Y: *y0}, {X: *x1, Y: *y1}},
	}
	if err := tool.HandleEvent(ev); err != nil {
		return err
	}

	if len(plot.curves) == 0 {
		fmt.Println("No profile computed")
		return nil
	}
	c := plot.curves[0]
	summary := profile.Summarize(c.y)
	fmt.Printf("%s (%s, %d samples)\n", plot.title, c.xLabel, len(c.y))
	fmt.Printf("mean=%.6g std=%.6g min=%.6g max=%.6g\n", summary.Mean, summary.StdDev, summary.Min, summary.Max)
	for i, v := range c.y {
		fmt.Printf("%d\t%.6g\n", i, v)
	}
	for _, e := range legends.Entries() {
		fmt.Printf("legend %q visible=%t\n", e.Legend, e.Visible)
	}
	if poly, ok := plot.polygons[profile.PolygonLegend]; ok {
		fmt.Printf("roi polygon (%s):", poly.color)
		for i := range poly.xs {
			fmt.Printf(" (%.6g, %.6g)", poly.xs[i], poly.ys[i])
		}
		fmt.Println()
	}

	if *probe >= 0 {
		info := readout.NewPositionInfo(plot, readout.DefaultConverters()...)
		info.AutoSnapToActiveCurve = true
		i := min(int(*probe+0.5), len(c.y)-1)
		y := float64(c.y[i])
		info.MouseMoved(*probe, y, *probe, y)
		for _, f := range info.Fields() {
			fmt.Printf("%s: %s ", f.Name, f.Text)
		}
		if info.FarFromCurve() {
			fmt.Print("(no sample nearby)")
		}
		fmt.Println()
	}

	if cfg.Output.Verbose {
		fmt.Printf("Profile computed in %.3f ms\n", float64(time.Since(start).Microseconds())/1000)
	}
	return nil
}

func runMesh(args []string) error {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	configPath := fs.String("config", "plotgeom.yaml", "Configuration file")
	shape := fs.String("shape", "box", "Shape: box, cylinder or hexagon")
	output := fs.String("output", "output.stl", "Output STL filename")
	positions := fs.String("positions", "0,0,0", "Semicolon separated x,y,z centers")
	sizeX := fs.Float64("sx", 1, "Box size along x")
	sizeY := fs.Float64("sy", 1, "Box size along y")
	radius := fs.Float64("radius", 1, "Cylinder or hexagon radius")
	height := fs.Float64("height", 1, "Shape height")
	fs.Parse(args)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	centers, err := parsePositions(*positions)
	if err != nil {
		return err
	}

	item := mesh.NewItem(nil)
	var m *mesh.Mesh
	switch *shape {
	case "box":
		box := mesh.NewBox(nil)
		err = box.SetData(centers, [3]float64{*sizeX, *sizeY, *height}, cfg.Mesh.Color)
		m = box.Mesh()
	case "cylinder":
		cyl := mesh.NewCylinder(nil)
		err = cyl.SetData(centers, *radius, *height, cfg.Mesh.Color, cfg.Mesh.CylinderFaces)
		m = cyl.Mesh()
	case "hexagon":
		hex := mesh.NewHexagon(nil)
		err = hex.SetData(centers, *radius, *height, cfg.Mesh.Color, cfg.Mesh.HexagonPhase)
		m = hex.Mesh()
	default:
		return fmt.Errorf("unknown shape %q", *shape)
	}
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("no positions given")
	}
	if err := item.SetData(m.Position, m.Color, m.Normal, m.Mode, false); err != nil {
		return err
	}
	mode, _ := item.DrawMode()
	if cfg.Output.Verbose {
		lo, hi := m.Bounds()
		fmt.Printf("%s: %d vertices (%s), bounds %v - %v\n", *shape, m.Len(), mode, lo, hi)
	}

	triangles, err := stl.FromMesh(item.Mesh())
	if err != nil {
		return err
	}
	if cfg.Output.STLBinary {
		err = stl.SaveToSTL(*output, triangles)
	} else {
		err = saveASCII(*output, *shape, triangles)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%d triangles saved to %s\n", len(triangles), *output)
	return nil
}

func saveASCII(filename, name string, triangles []stl.Triangle) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := stl.WriteASCII(w, name, triangles); err != nil {
		return err
	}
	return w.Flush()
}

// parsePositions reads "x,y,z;x,y,z"
func parsePositions(s string) ([][3]float32, error) {
	var out [][3]float32
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid position %q: want x,y,z", part)
		}
		var p [3]float32
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
			if err != nil {
				return nil, fmt.Errorf("invalid position %q: %w", part, err)
			}
			p[i] = float32(v)
		}
		out = append(out, p)
	}
	return out, nil
}
