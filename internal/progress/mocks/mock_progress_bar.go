// SPDX-License-Identifier: Apache-2.0

package mocks

type Bar struct {
	AddFn   func(int) error
	CloseFn func() error
	added   int
}

func (b *Bar) Add(n int) error {
	b.added += n
	if b.AddFn != nil {
		return b.AddFn(n)
	}
	return nil
}

func (b *Bar) Close() error {
	if b.CloseFn != nil {
		return b.CloseFn()
	}
	return nil
}

// Added returns the total progress added to the bar.
func (b *Bar) Added() int {
	return b.added
}
