// Package dashboard lays multiple chart panels out on a shared canvas.
// The image form renders panels concurrently and composites them onto
// a single grid; the terminal form stacks panels sequentially.
package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/render"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
)

const (
	defaultPanelWidth  = 600
	defaultPanelHeight = 400
	titleBandHeight    = 44
)

// Image renders every panel and composites them onto one PNG canvas.
// Placement follows each panel's declared cell, not slice order. A
// single failing panel fails the whole dashboard.
func Image(ctx context.Context, req *core.DashboardRequest, th *theme.Theme) (*core.RenderedArtifact, error) {
	band := 0
	if req.Title != "" {
		band = titleBandHeight
	}

	width := req.Width
	if width <= 0 {
		width = req.Cols * defaultPanelWidth
	}
	height := req.Height
	if height <= 0 {
		height = req.Rows*defaultPanelHeight + band
	}

	cellW := width / req.Cols
	cellH := (height - band) / req.Rows

	panels := make([]image.Image, len(req.Panels))
	g, ctx := errgroup.WithContext(ctx)
	for i, panel := range req.Panels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := renderPanel(panel, th, cellW, cellH)
			if err != nil {
				return fmt.Errorf("panel %d (%s at %d,%d): %w", i+1, panel.Type, panel.Row, panel.Col, err)
			}
			panels[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	paper := color.RGBA{R: th.Paper.R, G: th.Paper.G, B: th.Paper.B, A: 255}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	for i, panel := range req.Panels {
		x := (panel.Col - 1) * cellW
		y := band + (panel.Row-1)*cellH
		rect := image.Rect(x, y, x+cellW, y+cellH)
		draw.Draw(canvas, rect, panels[i], image.Point{}, draw.Over)
	}

	if req.Title != "" {
		drawTitle(canvas, req.Title, th, width, band)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("%w: encoding dashboard: %v", core.ErrRenderFailed, err)
	}
	return &core.RenderedArtifact{Data: buf.Bytes(), Format: core.FormatPNG}, nil
}

func renderPanel(panel core.PanelSpec, th *theme.Theme, w, h int) (image.Image, error) {
	sub := &core.ChartRequest{
		Type:    panel.Type,
		Title:   panel.Title,
		XLabel:  panel.XLabel,
		YLabel:  panel.YLabel,
		Series:  panel.Series,
		Pie:     panel.Pie,
		Width:   w,
		Height:  h,
		Options: panel.Options,
	}

	artifact, err := render.Chart(sub, th, core.FormatPNG)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(artifact.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding panel image: %v", core.ErrRenderFailed, err)
	}
	return img, nil
}

// drawTitle centers the dashboard title in the top band. The bitmap
// face is small, so it is drawn once per character cell rather than
// scaled.
func drawTitle(canvas *image.RGBA, title string, th *theme.Theme, width, band int) {
	face := basicfont.Face7x13
	fontColor := color.RGBA{R: th.FontColor.R, G: th.FontColor.G, B: th.FontColor.B, A: 255}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(fontColor),
		Face: face,
	}
	textWidth := d.MeasureString(title).Ceil()
	d.Dot = fixed.P((width-textWidth)/2, band/2+face.Height/2)
	d.DrawString(title)
}
