// Command gones is the Ebitengine window host for the NES core: it
// loads a ROM, drives one console frame per Ebitengine Update, and
// blits the palette-indexed framebuffer to the screen.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"nescore/internal/cartridge"
	"nescore/internal/console"
	"nescore/internal/controller"
	"nescore/internal/ppu"
)

const (
	windowWidth  = 512
	windowHeight = 480
)

type game struct {
	cons        *console.Console
	frameImage  *ebiten.Image
	imageBuffer *image.RGBA
}

func newGame(cons *console.Console) *game {
	return &game{
		cons:        cons,
		frameImage:  ebiten.NewImage(ppu.FrameWidth, ppu.FrameHeight),
		imageBuffer: image.NewRGBA(image.Rect(0, 0, ppu.FrameWidth, ppu.FrameHeight)),
	}
}

var keyToButton = map[ebiten.Key]controller.Button{
	ebiten.KeyZ:          controller.ButtonA,
	ebiten.KeyX:          controller.ButtonB,
	ebiten.KeyShiftRight: controller.ButtonSelect,
	ebiten.KeyEnter:      controller.ButtonStart,
	ebiten.KeyArrowUp:    controller.ButtonUp,
	ebiten.KeyArrowDown:  controller.ButtonDown,
	ebiten.KeyArrowLeft:  controller.ButtonLeft,
	ebiten.KeyArrowRight: controller.ButtonRight,
}

func (g *game) Update() error {
	var mask uint8
	for key, button := range keyToButton {
		if ebiten.IsKeyPressed(key) {
			mask |= uint8(button)
		}
	}
	g.cons.SetButtons(mask)
	g.cons.NextFrame(nil)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.cons.FrameBuffer()
	for y := 0; y < ppu.FrameHeight; y++ {
		for x := 0; x < ppu.FrameWidth; x++ {
			r, gg, b := ppu.RGB(frame[y*ppu.FrameWidth+x], 0)
			g.imageBuffer.SetRGBA(x, y, color.RGBA{R: r, G: gg, B: b, A: 255})
		}
	}
	g.frameImage.WritePixels(g.imageBuffer.Pix)

	op := &ebiten.DrawImageOptions{}
	scaleX := float64(windowWidth) / float64(ppu.FrameWidth)
	scaleY := float64(windowHeight) / float64(ppu.FrameHeight)
	op.GeoM.Scale(scaleX, scaleY)
	screen.DrawImage(g.frameImage, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func main() {
	romPath := flag.String("rom", "", "path to an iNES ROM file")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("gones: -rom is required")
	}

	f, err := os.Open(*romPath)
	if err != nil {
		log.Fatalf("gones: opening ROM: %v", err)
	}
	defer f.Close()

	cart, err := cartridge.Load(f)
	if err != nil {
		log.Fatalf("gones: loading ROM: %v", err)
	}

	cons := console.New()
	cons.LoadROM(cart)

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("gones")
	if err := ebiten.RunGame(newGame(cons)); err != nil {
		log.Fatalf("gones: %v", err)
	}
}
