package addr

// video registers
const (
	// LCDC is the LCD Control register.
	LCDC uint16 = 0xFF40
	// STAT is the LCD Status register.
	STAT uint16 = 0xFF41
	// SCY is the background Scroll Y register.
	SCY uint16 = 0xFF42
	// SCX is the background Scroll X register.
	SCX uint16 = 0xFF43
	// LY is the current scanline register (read only).
	LY uint16 = 0xFF44
	// LYC is the LY compare register.
	LYC uint16 = 0xFF45
	// DMA is the OAM DMA transfer trigger register.
	DMA uint16 = 0xFF46
	// BGP is the background/window palette register.
	BGP uint16 = 0xFF47
	// OBP0 is the object palette 0 register.
	OBP0 uint16 = 0xFF48
	// OBP1 is the object palette 1 register.
	OBP1 uint16 = 0xFF49
	// WY is the window Y position register.
	WY uint16 = 0xFF4A
	// WX is the window X position register (screen X + 7).
	WX uint16 = 0xFF4B
)

// memory regions
const (
	// ROMEnd is the last address of the fixed cartridge ROM window.
	ROMEnd uint16 = 0x7FFF
	// VRAMStart is the start of video RAM.
	VRAMStart uint16 = 0x8000
	// VRAMEnd is the end of video RAM.
	VRAMEnd uint16 = 0x9FFF
	// WRAMStart is the start of work RAM.
	WRAMStart uint16 = 0xC000
	// EchoStart is the start of the echo mirror of work RAM.
	EchoStart uint16 = 0xE000
	// EchoEnd is the end of the echo mirror.
	EchoEnd uint16 = 0xFDFF
	// OAMStart is the start of object attribute memory (40 entries * 4 bytes).
	OAMStart uint16 = 0xFE00
	// OAMEnd is the end of object attribute memory.
	OAMEnd uint16 = 0xFE9F
	// UnusableStart is the start of the unmapped area after OAM.
	UnusableStart uint16 = 0xFEA0
	// HRAMStart is the start of high RAM.
	HRAMStart uint16 = 0xFF80
)

// tile data and tile maps
const (
	// TileData0 is the start of the unsigned tile data bank (tiles 0-255).
	TileData0 uint16 = 0x8000
	// TileData2 is the base of the signed addressing mode (tile 0 of the
	// signed bank; indices 128-255 of tilemaps resolve below it).
	TileData2 uint16 = 0x9000

	// TileMap0 is background/window tile map 0.
	TileMap0 uint16 = 0x9800
	// TileMap1 is background/window tile map 1.
	TileMap1 uint16 = 0x9C00
)

// interrupts
const (
	// IF is the interrupt request flags register.
	IF uint16 = 0xFF0F
	// IE is the interrupt enable register.
	IE uint16 = 0xFFFF
)

// joypad
const (
	// P1 is used to select and read the joypad state.
	P1 uint16 = 0xFF00
)

// serial I/O
const (
	// SB holds the byte to transmit over the serial channel.
	SB uint16 = 0xFF01
	// SC controls serial transfers: bit 7 starts one, bit 0 selects the
	// internal clock. Hardware clears bit 7 on completion.
	SC uint16 = 0xFF02
)

// timers
const (
	// DIV exposes the upper byte of the internal 16-bit divider. Writes reset it.
	DIV uint16 = 0xFF04
	// TIMA is the timer counter. Requests an interrupt on overflow.
	TIMA uint16 = 0xFF05
	// TMA is the timer modulo, loaded into TIMA after an overflow.
	TMA uint16 = 0xFF06
	// TAC is the timer control register (enable bit and clock select).
	TAC uint16 = 0xFF07
)

// Interrupt identifies one of the five interrupt sources, by request/enable
// bit position. Lower bits have higher dispatch priority.
type Interrupt uint8

const (
	// VBlankInterrupt fires when the PPU enters the vertical blanking period.
	VBlankInterrupt Interrupt = iota
	// StatInterrupt fires on the conditions selected in the STAT register.
	StatInterrupt
	// TimerInterrupt fires when TIMA overflows.
	TimerInterrupt
	// SerialInterrupt fires when a serial transfer completes.
	SerialInterrupt
	// JoypadInterrupt fires when a selected input line goes low.
	JoypadInterrupt
)
