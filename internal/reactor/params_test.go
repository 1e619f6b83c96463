package reactor

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Params", func() {
	It("derives the dilution rate", func() {
		Expect(exampleParams.Dilution()).To(BeNumerically("~", 0.1, 1e-15))
	})

	It("evaluates Monod growth", func() {
		mu, ok := exampleParams.Growth(2.0)
		Expect(ok).To(BeTrue())
		Expect(mu).To(BeNumerically("~", 0.2, 1e-15))

		_, ok = exampleParams.Growth(-2.0)
		Expect(ok).To(BeFalse())
	})

	Describe("SteadyState", func() {
		It("solves μ(S*) = D", func() {
			x, s, ok := exampleParams.SteadyState()
			Expect(ok).To(BeTrue())
			Expect(s).To(BeNumerically("~", 2.0/3.0, 1e-12))
			Expect(x).To(BeNumerically("~", 0.5*(20-2.0/3.0), 1e-12))

			mu, _ := exampleParams.Growth(s)
			Expect(mu).To(BeNumerically("~", exampleParams.Dilution(), 1e-12))
			Expect(exampleParams.Washout()).To(BeFalse())
		})

		DescribeTable("reports washout",
			func(feed float64) {
				p := exampleParams
				p.Feed = feed
				x, s, ok := p.SteadyState()
				Expect(ok).To(BeFalse())
				Expect(x).To(BeZero())
				Expect(s).To(Equal(p.FeedSubstrate))
				Expect(p.Washout()).To(BeTrue())
			},
			Entry("D above μmax", 50.0),
			Entry("D between μ(Sr) and μmax", 38.0),
			Entry("batch operation", 0.0),
		)

		It("gives the critical dilution rate μ(Sr)", func() {
			Expect(exampleParams.CriticalDilution()).To(BeNumerically("~", 0.4*20/22, 1e-15))
		})
	})

	It("validates volume and yield", func() {
		Expect(exampleParams.Validate()).To(Succeed())

		p := exampleParams
		p.Volume = 0
		Expect(p.Validate()).To(MatchError(ErrZeroVolume))

		p = exampleParams
		p.Yield = 0
		Expect(p.Validate()).To(MatchError(ErrZeroYield))
	})

	It("gets and sets parameters by name", func() {
		p := exampleParams
		Expect(p.SetParam("feed", 25)).To(Succeed())
		Expect(p.Feed).To(Equal(25.0))
		Expect(p.GetParams()).To(HaveKeyWithValue("feed", 25.0))
		Expect(p.GetParams()).To(HaveLen(len(ParamNames())))

		Expect(p.SetParam("temperature", 37)).To(MatchError(ErrUnknownParam))
	})
})

var _ = Describe("Trajectory", func() {
	traj := Trajectory{{T: 0, X: 1, S: 2}, {T: 0.5, X: 3, S: 4}}

	It("exposes columns in T, X, S order", func() {
		Expect(Columns()).To(Equal([]string{"T", "X", "S"}))
		Expect(traj.Times()).To(Equal([]float64{0, 0.5}))
		Expect(traj.Biomass()).To(Equal([]float64{1, 3}))
		Expect(traj.Substrate()).To(Equal([]float64{2, 4}))
		Expect(traj.Rows()).To(Equal([][]float64{{0, 1, 2}, {0.5, 3, 4}}))
	})

	It("returns the last row", func() {
		Expect(traj.Last()).To(Equal(Point{T: 0.5, X: 3, S: 4}))
		Expect(Trajectory(nil).Last()).To(Equal(Point{}))
	})

	It("does not share column buffers with callers", func() {
		cols := Columns()
		cols[0] = "time"
		Expect(Columns()[0]).To(Equal("T"))
	})
})
