package block

import "fmt"

// Page is a batch of equal-length blocks processed position by position.
type Page struct {
	blocks []Block
	length int
}

func NewPage(blocks ...Block) *Page {
	length := 0
	if len(blocks) > 0 {
		length = blocks[0].Len()
		for i, b := range blocks[1:] {
			if b.Len() != length {
				panic(fmt.Sprintf("block: page channel %d has %d positions, want %d", i+1, b.Len(), length))
			}
		}
	}
	return &Page{blocks: blocks, length: length}
}

func (p *Page) ChannelCount() int  { return len(p.blocks) }
func (p *Page) Block(i int) Block  { return p.blocks[i] }
func (p *Page) Len() int           { return p.length }
