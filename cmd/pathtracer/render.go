package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pathtracer/assets"
	"pathtracer/internal/bvh"
	"pathtracer/internal/config"
	"pathtracer/internal/controls"
	"pathtracer/internal/engine"
	"pathtracer/internal/errsink"
	"pathtracer/internal/gpu"
	"pathtracer/internal/sceneio"
)

// errSinkCapacity is the number of recent diagnostics the host keeps and
// drains to the terminal, per SPEC_FULL.md section 11.
const errSinkCapacity = 64

func renderCmd() *cobra.Command {
	var (
		width      int
		height     int
		vsync      bool
		fullscreen bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "render [scene-paths...]",
		Short: "Open a window and progressively render one or more scene manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("width") {
				cfg.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Height = height
			}
			if cmd.Flags().Changed("vsync") {
				cfg.VSync = vsync
			}
			if cmd.Flags().Changed("fullscreen") {
				cfg.Fullscreen = fullscreen
			}

			scenes := args
			if len(scenes) == 0 {
				scenes = []string{cfg.DefaultScene}
			}

			return runRenderLoop(cfg, scenes)
		},
	}

	cmd.Flags().IntVar(&width, "width", 1280, "window width in pixels")
	cmd.Flags().IntVar(&height, "height", 720, "window height in pixels")
	cmd.Flags().BoolVar(&vsync, "vsync", true, "enable vertical sync")
	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "open in fullscreen on the primary monitor")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML host-configuration file")

	return cmd
}

func runRenderLoop(cfg config.Config, scenes []string) error {
	printBanner(fmt.Sprintf("%s (%dx%d)", cfg.Title, cfg.Width, cfg.Height))

	sink := errsink.New(errSinkCapacity)
	loader := sceneio.NewLoader(".")
	loader.Warnf = sink.Warnf

	device, err := gpu.NewDevice(cfg.Width, cfg.Height, cfg.Title, cfg.Fullscreen, cfg.VSync)
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	defer device.Destroy()

	shaderFiles, err := assets.ListShaders()
	if err != nil {
		return fmt.Errorf("list embedded shaders: %w", err)
	}
	sink.Report(errsink.Info, "%d shader(s) embedded", len(shaderFiles))

	pathtraceSrc, err := assets.ReadShader("pathtrace.comp")
	if err != nil {
		return fmt.Errorf("read pathtrace shader: %w", err)
	}
	accumulateSrc, err := assets.ReadShader("accumulate.comp")
	if err != nil {
		return fmt.Errorf("read accumulate shader: %w", err)
	}
	wireVertSrc, err := assets.ReadShader("wireframe.vert")
	if err != nil {
		return fmt.Errorf("read wireframe vertex shader: %w", err)
	}
	wireFragSrc, err := assets.ReadShader("wireframe.frag")
	if err != nil {
		return fmt.Errorf("read wireframe fragment shader: %w", err)
	}

	controller := engine.NewController(sink, cfg.Width, cfg.Height)
	handler := controls.NewHandler()

	var pipeline *gpu.RenderPipeline
	loadScene := func(index int) error {
		sc, err := loader.Load(scenes[index])
		if err != nil {
			return err
		}
		tree := bvh.Build(sc.Triangles)
		flat := tree.Flatten()

		if pipeline != nil {
			pipeline.Delete()
		}
		pipeline, err = gpu.NewRenderPipeline(device, *sc, tree, flat,
			string(pathtraceSrc), string(accumulateSrc), string(wireVertSrc), string(wireFragSrc))
		if err != nil {
			return err
		}
		controller.Controls.ResetAccumulation = true
		return nil
	}

	if err := loadScene(controller.Controls.SceneIndex); err != nil {
		return fmt.Errorf("load initial scene %q: %w", scenes[controller.Controls.SceneIndex], err)
	}

	lastDrain := time.Now()
	lastDrained := time.Time{}
	for !device.Window.ShouldClose() {
		ev := handler.Poll(device.Window)
		sceneChanged, screenshot := controller.HandleKeyEvents(ev, len(scenes))

		if sceneChanged {
			if err := loadScene(controller.Controls.SceneIndex); err != nil {
				controller.ReportSceneLoadError(scenes[controller.Controls.SceneIndex], err)
			} else {
				controller.State.Reset()
			}
		}

		controller.RunFrame(pipeline)

		if screenshot {
			hud := fmt.Sprintf("spp=%d frame=%d", controller.Controls.SamplesPerPixel, controller.State.FrameIndex)
			path, err := controls.SaveScreenshot(pipeline.ReadDisplayPixels(), cfg.Width, cfg.Height, hud)
			if err != nil {
				sink.Warnf("save screenshot: %v", err)
			} else {
				printBanner("saved " + path)
			}
		}

		if time.Since(lastDrain) >= time.Second {
			lastDrained = drainDiagnostics(sink, lastDrained)
			lastDrain = time.Now()
		}
		if sink.HasFatal() {
			break
		}
	}

	pipeline.Delete()
	drainDiagnostics(sink, lastDrained)
	return nil
}

// drainDiagnostics prints every retained entry newer than since and
// returns the newest entry's timestamp, so repeated calls during an idle
// render loop don't reprint the same diagnostics once per second.
func drainDiagnostics(sink *errsink.Sink, since time.Time) time.Time {
	newest := since
	for _, e := range sink.Recent(errSinkCapacity) {
		if !e.Time.After(since) {
			continue
		}
		if e.Severity >= errsink.Error {
			printFatal(e.Severity.String(), fmt.Errorf("%s", e.Message))
		} else {
			printWarn(e.Message)
		}
		if e.Time.After(newest) {
			newest = e.Time
		}
	}
	return newest
}
