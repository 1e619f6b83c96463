package reactor

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sweep", func() {
	init := Point{X: 1, S: 10}

	It("runs every feed and keeps input order", func() {
		feeds := []float64{5, 10, 50, 1}
		results, err := Sweep(context.Background(), exampleParams, init, 0.1, 20, feeds)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(feeds)))

		for i, r := range results {
			Expect(r.Feed).To(Equal(feeds[i]))
			Expect(r.Dilution).To(BeNumerically("~", feeds[i]/100, 1e-15))
			Expect(r.Trajectory).To(HaveLen(21))
			Expect(r.Final).To(Equal(r.Trajectory.Last()))

			p := exampleParams
			p.Feed = feeds[i]
			single, err := Run(p, init, 0.1, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Trajectory).To(Equal(single))
		}
		Expect(results[2].Washout).To(BeTrue())
		Expect(results[1].Washout).To(BeFalse())
	})

	It("fails on invalid base parameters", func() {
		p := exampleParams
		p.Volume = 0
		_, err := Sweep(context.Background(), p, init, 0.1, 20, []float64{5, 10})
		Expect(err).To(MatchError(ErrZeroVolume))
	})

	It("stops when the context is already canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Sweep(ctx, exampleParams, init, 0.1, 20, []float64{5, 10})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("returns an empty result for no feeds", func() {
		results, err := Sweep(context.Background(), exampleParams, init, 0.1, 20, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
	})
})
