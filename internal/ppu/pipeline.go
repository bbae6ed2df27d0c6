package ppu

// Step advances the PPU by exactly one dot. The caller (the console's
// master-clock scheduler) invokes this once per PPU clock edge.
func (p *PPU) Step() {
	if p.scanline == -1 && p.cycle == 1 {
		p.status &^= 0xE0 // clear vblank, sprite0 hit, sprite overflow
	}

	if p.scanline >= -1 && p.scanline <= 239 {
		p.renderScanline()
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.status |= 0x80
		if p.ctrl&0x80 != 0 {
			p.nmiEdge = true
		}
	}

	p.advanceDot()
}

func (p *PPU) advanceDot() {
	p.cycle++
	if p.cycle > 340 {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.oddFrame = !p.oddFrame
			p.frameComplete = true
			// Skip the idle dot on odd frames when rendering is on.
			if p.oddFrame && p.renderingEnabled() {
				p.cycle = 1
			}
		}
	}
}

// renderScanline dispatches one dot of work for scanlines -1..239,
// per the tile-fetch cadence and sprite evaluation spec.md describes.
func (p *PPU) renderScanline() {
	if (p.cycle >= 2 && p.cycle <= 257) || (p.cycle >= 321 && p.cycle <= 337) {
		p.shiftBackground()
		switch (p.cycle - 1) % 8 {
		case 0:
			p.fetchNametableByte()
		case 2:
			p.fetchAttributeByte()
		case 4:
			p.fetchPatternLow()
		case 6:
			p.fetchPatternHigh()
		case 7:
			p.reloadShiftRegisters()
			p.incrementCoarseX()
		}
	}

	if p.cycle == 256 {
		p.incrementY()
	}
	if p.cycle == 257 {
		p.copyHorizontal()
		if p.scanline >= 0 {
			p.selectSprites()
		}
	}
	if p.scanline == -1 && p.cycle >= 280 && p.cycle <= 304 {
		p.copyVertical()
	}
	if p.cycle == 340 && p.scanline >= 0 {
		p.fetchSpritePatterns()
	}
	if p.cycle >= 1 && p.cycle <= 256 && p.scanline >= 0 {
		p.renderPixel()
	}
}

func (p *PPU) backgroundPatternBase() uint16 {
	if p.ctrl&0x10 != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) fetchNametableByte() {
	if !p.renderingEnabled() {
		return
	}
	addr := 0x2000 | (p.v & 0x0FFF)
	p.nextTile = p.readMemory(addr)
}

func (p *PPU) fetchAttributeByte() {
	if !p.renderingEnabled() {
		return
	}
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	b := p.readMemory(addr)
	coarseX := p.v & 0x1F
	coarseY := (p.v >> 5) & 0x1F
	shift := uint(0)
	if coarseX&0x02 != 0 {
		shift += 2
	}
	if coarseY&0x02 != 0 {
		shift += 4
	}
	p.nextAttrib = (b >> shift) & 0x03
}

func (p *PPU) fetchPatternLow() {
	if !p.renderingEnabled() {
		return
	}
	fineY := (p.v >> 12) & 0x7
	base := p.backgroundPatternBase() + uint16(p.nextTile)*16 + fineY
	p.nextPatternLo = p.readMemory(base)
}

func (p *PPU) fetchPatternHigh() {
	if !p.renderingEnabled() {
		return
	}
	fineY := (p.v >> 12) & 0x7
	base := p.backgroundPatternBase() + uint16(p.nextTile)*16 + fineY
	p.nextPatternHi = p.readMemory(base + 8)
}

func (p *PPU) reloadShiftRegisters() {
	if !p.renderingEnabled() {
		return
	}
	p.bgPatternLo = (p.bgPatternLo & 0xFF00) | uint16(p.nextPatternLo)
	p.bgPatternHi = (p.bgPatternHi & 0xFF00) | uint16(p.nextPatternHi)

	var lo, hi uint16
	if p.nextAttrib&0x01 != 0 {
		lo = 0xFF
	}
	if p.nextAttrib&0x02 != 0 {
		hi = 0xFF
	}
	p.bgAttribLo = (p.bgAttribLo & 0xFF00) | lo
	p.bgAttribHi = (p.bgAttribHi & 0xFF00) | hi
}

func (p *PPU) shiftBackground() {
	if !p.renderingEnabled() {
		return
	}
	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttribLo <<= 1
	p.bgAttribHi <<= 1
}

func (p *PPU) incrementCoarseX() {
	if !p.renderingEnabled() {
		return
	}
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if !p.renderingEnabled() {
		return
	}
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v >> 5) & 0x1F
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontal() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVertical() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// selectSprites picks up to 8 OAM entries whose row range covers the
// next scanline, raising sprite overflow on the 9th qualifying entry.
// Pattern bytes are fetched later, at dot 340.
func (p *PPU) selectSprites() {
	target := p.scanline + 1
	height := p.spriteHeight()

	p.spriteCount = 0
	p.spriteOverflow = false
	for i := range p.sprites {
		p.sprites[i] = spriteUnit{}
	}

	for i := 0; i < len(p.oam); i++ {
		row := target - int(p.oam[i].Y)
		if row < 0 || row >= height {
			continue
		}
		if p.spriteCount >= 8 {
			p.spriteOverflow = true
			p.status |= 0x20
			break
		}
		e := p.oam[i]
		p.sprites[p.spriteCount] = spriteUnit{
			oamIndex:  i,
			row:       uint8(row),
			x:         e.X,
			attr:      e.Attr,
			isSprite0: i == 0,
		}
		p.spriteCount++
	}
}

// fetchSpritePatterns latches pattern bytes for every sprite selected
// by selectSprites, applying horizontal flip by bit reversal and
// vertical flip by inverting the row offset.
func (p *PPU) fetchSpritePatterns() {
	for i := 0; i < p.spriteCount; i++ {
		s := &p.sprites[i]
		e := p.oam[s.oamIndex]
		flipV := e.Attr&0x80 != 0
		flipH := e.Attr&0x40 != 0
		height := p.spriteHeight()

		r := s.row
		if flipV {
			r = uint8(height) - 1 - s.row
		}

		var base uint16
		if height == 16 {
			table := uint16(e.Tile&0x01) * 0x1000
			tileIndex := e.Tile &^ 0x01
			if r >= 8 {
				tileIndex++
				r -= 8
			}
			base = table + uint16(tileIndex)*16 + uint16(r)
		} else {
			base = p.spritePatternBase() + uint16(e.Tile)*16 + uint16(r)
		}

		lo := p.readMemory(base)
		hi := p.readMemory(base + 8)
		if flipH {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}
		s.loShift, s.hiShift = lo, hi
	}
}

func (p *PPU) spritePatternBase() uint16 {
	if p.ctrl&0x08 != 0 {
		return 0x1000
	}
	return 0
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

func (p *PPU) renderPixel() {
	x := p.cycle - 1
	y := p.scanline

	var bgPixel, bgPalette uint8
	if p.backgroundEnabled() {
		bit := uint16(0x8000) >> p.fineX
		if p.bgPatternLo&bit != 0 {
			bgPixel |= 0x01
		}
		if p.bgPatternHi&bit != 0 {
			bgPixel |= 0x02
		}
		if p.bgAttribLo&bit != 0 {
			bgPalette |= 0x01
		}
		if p.bgAttribHi&bit != 0 {
			bgPalette |= 0x02
		}
	}

	spritePixel, spritePalette, spriteBehind, spriteIsZero := p.spritePixelAt(uint8(x))
	if !p.spritesEnabled() {
		spritePixel = 0
	}

	var paletteAddr uint16
	switch {
	case bgPixel == 0 && spritePixel == 0:
		paletteAddr = 0
	case bgPixel == 0:
		paletteAddr = 0x10 + uint16(spritePalette)*4 + uint16(spritePixel)
	case spritePixel == 0:
		paletteAddr = uint16(bgPalette)*4 + uint16(bgPixel)
	case spriteBehind:
		paletteAddr = uint16(bgPalette)*4 + uint16(bgPixel)
	default:
		paletteAddr = 0x10 + uint16(spritePalette)*4 + uint16(spritePixel)
	}

	if bgPixel != 0 && spritePixel != 0 && spriteIsZero && x != 255 &&
		p.backgroundEnabled() && p.spritesEnabled() {
		p.status |= 0x40
	}

	palValue := p.readMemory(0x3F00 + paletteAddr)
	p.frameBuffer[y*FrameWidth+x] = palValue
}

// spritePixelAt returns the color index (0 = transparent), palette
// select, behind-background priority bit, and sprite-zero flag for
// the highest-priority sprite covering screen column x.
func (p *PPU) spritePixelAt(x uint8) (pixel, palette uint8, behind, isZero bool) {
	for i := 0; i < p.spriteCount; i++ {
		s := &p.sprites[i]
		offset := int(x) - int(s.x)
		if offset < 0 || offset > 7 {
			continue
		}
		bit := uint(7 - offset)
		lo := (s.loShift >> bit) & 1
		hi := (s.hiShift >> bit) & 1
		px := lo | hi<<1
		if px == 0 {
			continue
		}
		return px, s.attr & 0x03, s.attr&0x20 != 0, s.isSprite0
	}
	return 0, 0, false, false
}
