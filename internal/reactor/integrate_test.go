package reactor

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bioreactor/internal/dynamo"
	"github.com/san-kum/bioreactor/internal/integrators"
)

// exampleParams: D = 0.1 1/h, μmax = 0.4 1/h.
var exampleParams = Params{MuMax: 0.4, Ks: 2.0, Yield: 0.5, Volume: 100, Feed: 10, FeedSubstrate: 20}

func relClose(want float64) OmegaMatcher {
	return BeNumerically("~", want, math.Abs(want)*1e-9)
}

var _ = Describe("Integrate", func() {
	Describe("reference scenario", func() {
		var traj Trajectory

		BeforeEach(func() {
			var err error
			traj, err = Integrate(0, 1.0, 10.0, 0.5, 0.1, 0.4, 2.0, 100, 10, 20, 5)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns steps+1 rows starting at the initial condition", func() {
			Expect(traj).To(HaveLen(6))
			Expect(traj[0]).To(Equal(Point{T: 0, X: 1.0, S: 10.0}))
			Expect(traj[1].T).To(BeNumerically("~", 0.1, 1e-15))
		})

		It("matches reference RK4 values", func() {
			golden := []Point{
				{T: 0.1, X: 1.0236169633602796, S: 10.03236740327944},
				{T: 0.2, X: 1.0478098675455612, S: 10.062790878441657},
				{T: 0.3, X: 1.0725919285863288, S: 10.091251874419706},
				{T: 0.4, X: 1.0979766242142044, S: 10.11773123832717},
				{T: 0.5, X: 1.1239776957375394, S: 10.142209212487236},
			}
			for i, want := range golden {
				got := traj[i+1]
				Expect(got.T).To(BeNumerically("~", want.T, 1e-12), "row %d T", i+1)
				Expect(got.X).To(relClose(want.X), "row %d X", i+1)
				Expect(got.S).To(relClose(want.S), "row %d S", i+1)
			}
		})

		It("agrees with Run on the same parameters", func() {
			again, err := Run(exampleParams, Point{T: 0, X: 1.0, S: 10.0}, 0.1, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(traj))
		})
	})

	It("advances time arithmetically from T0", func() {
		const t0, h, steps = 3.5, 0.05, 200
		traj, err := Run(exampleParams, Point{T: t0, X: 1, S: 5}, h, steps)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(HaveLen(steps + 1))
		for i, p := range traj {
			Expect(p.T).To(BeNumerically("~", t0+float64(i)*h, 1e-9))
		}
	})

	It("returns the singleton initial condition for zero steps", func() {
		init := Point{T: 1, X: 2, S: 3}
		traj, err := Run(exampleParams, init, 0.1, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(Equal(Trajectory{init}))
	})

	It("never creates biomass from nothing", func() {
		traj, err := Run(exampleParams, Point{X: 0, S: 5}, 0.1, 50)
		Expect(err).NotTo(HaveOccurred())
		for _, p := range traj {
			Expect(p.X).To(Equal(0.0))
		}
		Expect(traj.Last().S).To(BeNumerically(">", 5))
		Expect(traj.Last().S).To(BeNumerically("<", exampleParams.FeedSubstrate))
	})

	It("holds the analytic steady state", func() {
		xs, ss, ok := exampleParams.SteadyState()
		Expect(ok).To(BeTrue())

		traj, err := Run(exampleParams, Point{X: xs, S: ss}, 0.1, 100)
		Expect(err).NotTo(HaveOccurred())
		for _, p := range traj {
			Expect(p.X).To(BeNumerically("~", xs, 1e-9))
			Expect(p.S).To(BeNumerically("~", ss, 1e-9))
		}
	})

	It("does not clamp negative concentrations", func() {
		p := exampleParams
		p.FeedSubstrate = 0
		traj, err := Run(p, Point{X: 5, S: 0.5}, 2.0, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Substrate()).To(ContainElement(BeNumerically("<", 0)))
	})

	Describe("errors", func() {
		It("rejects zero volume before stepping", func() {
			traj, err := Integrate(0, 1, 10, 0.5, 0.1, 0.4, 2, 0, 10, 20, 5)
			Expect(err).To(MatchError(ErrZeroVolume))
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
			Expect(traj).To(BeNil())
		})

		It("rejects zero yield", func() {
			_, err := Integrate(0, 1, 10, 0, 0.1, 0.4, 2, 100, 10, 20, 5)
			Expect(err).To(MatchError(ErrZeroYield))
		})

		It("rejects a negative step count", func() {
			_, err := Integrate(0, 1, 10, 0.5, 0.1, 0.4, 2, 100, 10, 20, -1)
			Expect(err).To(MatchError(dynamo.ErrNegativeSteps))
		})

		It("checks the step count before the parameters", func() {
			_, err := Integrate(0, 1, 10, 0.5, 0.1, 0.4, 2, 0, 10, 20, -1)
			Expect(err).To(MatchError(dynamo.ErrNegativeSteps))
		})

		It("raises when Ks + S is zero at the initial state", func() {
			traj, err := Integrate(0, 1, -2, 0.5, 0.1, 0.4, 2, 100, 10, 20, 5)
			Expect(err).To(MatchError(ErrSingularSaturation))
			Expect(errors.Is(err, dynamo.ErrDomain)).To(BeTrue())
			Expect(traj).To(BeNil())

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(0))
			Expect(simErr.State).To(Equal(dynamo.State{1, -2}))
		})

		It("raises when an intermediate stage hits Ks + S = 0", func() {
			// X0 = 0, D = 1, Sr = 0, h = 1: stage 2 evaluates S0/2 = 2 = -Ks.
			p := Params{MuMax: 0.4, Ks: -2, Yield: 0.5, Volume: 1, Feed: 1, FeedSubstrate: 0}
			_, err := Run(p, Point{X: 0, S: 4}, 1, 3)
			Expect(err).To(MatchError(ErrSingularSaturation))
		})

		It("lets overflow propagate without error", func() {
			p := Params{MuMax: 1e300, Ks: 1, Yield: 1e-300, Volume: 1, Feed: 0, FeedSubstrate: 1}
			traj, err := Run(p, Point{X: 1e300, S: 1}, 1, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj).To(HaveLen(4))
			last := traj.Last()
			Expect(last.State().IsValid()).To(BeFalse())
		})
	})

	It("runs with any registered integrator", func() {
		euler, err := integrators.New("euler")
		Expect(err).NotTo(HaveOccurred())

		init := Point{X: 1, S: 10}
		e, err := RunWith(exampleParams, init, 0.1, 5, euler)
		Expect(err).NotTo(HaveOccurred())
		r, err := Run(exampleParams, init, 0.1, 5)
		Expect(err).NotTo(HaveOccurred())

		Expect(e).To(HaveLen(len(r)))
		Expect(e.Last().X).NotTo(Equal(r.Last().X))
		Expect(e.Last().X).To(BeNumerically("~", r.Last().X, 5e-3))
	})
})
