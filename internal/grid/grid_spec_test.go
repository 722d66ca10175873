package grid_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shellgrid/internal/grid"
)

var _ = Describe("Grid", func() {
	var g *grid.Grid

	Context("with two ragged fields, only the second carrying a ghost shell", func() {
		BeforeEach(func() {
			var err error
			g, err = grid.NewRagged(
				[]grid.Extents{{4, 3, 6}, {4, 3, 6}},
				[]grid.Extents{{0, 0, 0}, {1, 1, 2}},
			)
			Expect(err).NotTo(HaveOccurred())
		})

		It("appends ghost shells only where requested", func() {
			Expect(g.Shells(0)).To(Equal(4))
			Expect(g.Shells(1)).To(Equal(5))

			rows, depth, err := g.ShapeAt(1, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect([]int{rows, depth}).To(Equal([]int{1, 2}))
		})

		It("rejects angular indices beyond a coarse ghost shell", func() {
			_, err := g.Element(1, 4, 1, 0)
			Expect(err).To(MatchError(grid.ErrIndexOutOfRange))

			var ie *grid.IndexError
			Expect(err).To(BeAssignableToTypeOf(ie))
		})

		It("reads back every line it loads", func() {
			for shell := 0; shell < 5; shell++ {
				depth, err := g.DepthAt(1, shell)
				Expect(err).NotTo(HaveOccurred())

				line := make([]float64, depth)
				for l := range line {
					line[l] = float64(shell*10 + l)
				}
				Expect(g.LoadLine(line, 1, shell, 0)).To(Succeed())
				Expect(g.StoreLine(1, shell, 0)).To(Equal(line))
			}
		})

		It("keeps variables isolated", func() {
			Expect(g.Fill(1, 2.5)).To(Succeed())
			Expect(g.Sum(0)).To(BeZero())
			Expect(g.Sum(1)).To(BeNumerically("~", 2.5*(4*3*6+2), 1e-12))
		})

		It("clones without sharing storage", func() {
			Expect(g.Set(0, 0, 0, 0, 1)).To(Succeed())
			c, err := g.Clone()
			Expect(err).NotTo(HaveOccurred())

			Expect(g.Set(0, 0, 0, 0, 2)).To(Succeed())
			Expect(c.Get(0, 0, 0, 0)).To(Equal(1.0))
		})

		It("refuses access once released", func() {
			g.Release()
			_, err := g.DepthAt(0, 0)
			Expect(err).To(MatchError(grid.ErrReleased))
		})
	})

	Context("with an out-of-range variable", func() {
		BeforeEach(func() {
			var err error
			g, err = grid.NewUniform([]grid.Extents{{2, 2, 2}})
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports an invalid variable rather than an index error", func() {
			_, err := g.Element(1, 0, 0, 0)
			Expect(err).To(MatchError(grid.ErrInvalidVariable))
			Expect(err).NotTo(MatchError(grid.ErrIndexOutOfRange))
		})
	})
})
