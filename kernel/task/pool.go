package task

import "mos/config"

// Page is a fixed-size buffer backing one task's stack (spec §3, §6). Pages
// come from a pre-reserved pool of config.PoolSize pages; a page is "free"
// per the pool's bitmap rather than by inspecting its contents (spec §9's
// alternative to the self-referential link-word trick).
type Page [config.PageSize]uint32

// pagePool is the pre-reserved, fixed-capacity page allocator (spec §3
// "Stack page", §6 "Page pool"). Allocation scans for a free slot
// (O(PoolSize)); release simply clears the slot's bit. Both run under the
// IRQGuard, matching the original's palloc/free semantics.
type pagePool struct {
	pages [config.PoolSize]Page
	used  [config.PoolSize]bool
}

// alloc returns a free page and its pool index, or (nil, -1, false) if the
// pool is exhausted.
func (p *pagePool) alloc() (*Page, int, bool) {
	for i := range p.used {
		if !p.used[i] {
			p.used[i] = true
			return &p.pages[i], i, true
		}
	}
	return nil, -1, false
}

// release returns the page at index i to the pool.
func (p *pagePool) release(i int) {
	p.used[i] = false
}

// isUsed reports whether slot i currently backs a live TCB. Used by
// diagnostics (Find, PrintAll) to skip pool slots that have never been
// allocated, since a zero-value TCB's Status field happens to read Ready.
func (p *pagePool) isUsed(i int) bool { return p.used[i] }
