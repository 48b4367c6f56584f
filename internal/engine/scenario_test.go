package engine_test

import (
	"fmt"
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/newsflow/internal/engine"
	"github.com/san-kum/newsflow/internal/flow"
	"github.com/san-kum/newsflow/internal/style"
)

func hexOf(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var _ = Describe("Engine", func() {
	var (
		cfg     engine.Config
		records []flow.Record
		eng     *engine.Engine
		rec     *engine.Recorder
	)

	BeforeEach(func() {
		cfg = engine.DefaultConfig()
		cfg.Width, cfg.Height = 400, 300
		cfg.Seed = 7
		records = []flow.Record{
			{Category: "Sports", Sentiment: 0.9},
			{Category: "Crime", Sentiment: -0.9},
			{Category: "Unknown", Sentiment: 0.0},
		}
		var err error
		eng, err = engine.New(cfg, records)
		Expect(err).NotTo(HaveOccurred())
		rec = engine.NewRecorder()
	})

	Describe("a single frame", func() {
		It("draws one curve per record starting at its origin", func() {
			eng.Frame(rec)

			curves := rec.Curves()
			Expect(curves).To(HaveLen(3))
			agents := eng.Agents()
			for i, c := range curves {
				Expect(c.Points).NotTo(BeEmpty())
				Expect(c.Points[0]).To(Equal(agents[i].Origin))
				Expect(c.Points[1]).To(Equal(agents[i].Origin))
			}
		})

		It("colors curves by category with a fallback", func() {
			eng.Frame(rec)

			curves := rec.Curves()
			Expect(hexOf(curves[0].Color)).To(Equal(style.DefaultCategories["Sports"]))
			Expect(hexOf(curves[1].Color)).To(Equal(style.DefaultCategories["Crime"]))
			Expect(hexOf(curves[2].Color)).To(Equal("#aaaaaa"))
		})

		It("styles by sentiment", func() {
			eng.Frame(rec)

			curves := rec.Curves()
			Expect(curves[0].Color.A).To(BeNumerically(">=", 150))
			Expect(curves[0].Weight).To(BeNumerically("~", 1.0+0.8*(0.85/0.95), 1e-9))
			Expect(curves[1].Color.A).To(BeNumerically("<=", 200))
			Expect(curves[1].Weight).To(BeNumerically("<=", 1.2))
			Expect(curves[2].Color.A).To(BeNumerically("<=", 10))
			Expect(curves[2].Weight).To(BeNumerically("<=", 0.5))
		})

		It("clears once and then fades", func() {
			eng.Frame(rec)
			Expect(rec.Fills()).To(HaveLen(2))
			Expect(rec.Fills()[0].A).To(Equal(uint8(255)))
			Expect(rec.Fills()[1].A).To(Equal(cfg.FadeAlpha))

			rec.Reset()
			eng.Frame(rec)
			Expect(rec.Fills()).To(HaveLen(1))
			Expect(rec.Fills()[0].A).To(Equal(cfg.FadeAlpha))
		})

		It("advances time offset and progress", func() {
			stats := eng.Frame(rec)
			Expect(stats.Progress).To(BeNumerically("~", cfg.UnfurlingSpeed, 1e-12))
			Expect(stats.TimeOffset).To(BeNumerically("~", cfg.ZoffIncrement, 1e-12))
			Expect(stats.Segments).To(Equal(1))
			Expect(stats.Curves).To(Equal(3))
			Expect(eng.Grid().TimeOffset()).To(Equal(eng.TimeOffset()))
		})
	})

	Describe("unfurling", func() {
		It("grows every curve in lockstep and plateaus", func() {
			var stats engine.FrameStats
			for i := 0; i < 3000; i++ {
				stats = eng.Frame(rec)
				rec.Reset()
			}
			Expect(eng.Progress()).To(Equal(float64(cfg.NumSteps)))
			Expect(stats.Segments).To(Equal(cfg.NumSteps))

			eng.Frame(rec)
			for _, c := range rec.Curves() {
				Expect(len(c.Points)).To(BeNumerically("<=", cfg.NumSteps+2))
				last := c.Points[len(c.Points)-1]
				Expect(c.Points[len(c.Points)-2]).To(Equal(last))
			}
		})

		It("restarts after the plateau in loop mode", func() {
			cfg.Loop = true
			cfg.NumSteps = 2
			cfg.UnfurlingSpeed = 1
			eng, err := engine.New(cfg, records)
			Expect(err).NotTo(HaveOccurred())

			var seen []float64
			for i := 0; i < 4; i++ {
				seen = append(seen, eng.Frame(rec).Progress)
			}
			Expect(seen).To(Equal([]float64{1, 2, 1, 2}))
		})
	})

	Describe("resize", func() {
		It("resets progress and resizes the grid with ceiling division", func() {
			for i := 0; i < 50; i++ {
				eng.Frame(rec)
			}
			Expect(eng.Progress()).To(BeNumerically(">", 0))

			Expect(eng.Resize(1001, 333, eng.Records())).To(Succeed())

			Expect(eng.Progress()).To(BeZero())
			Expect(eng.Grid().Cols()).To(Equal(int(math.Ceil(1001 / cfg.Resolution))))
			Expect(eng.Grid().Rows()).To(Equal(int(math.Ceil(333 / cfg.Resolution))))
			for _, a := range eng.Agents() {
				Expect(a.Origin.X).To(BeNumerically("<", 1001))
				Expect(a.Origin.Y).To(BeNumerically("<", 333))
			}
		})

		It("replaces agents with the new record set", func() {
			Expect(eng.Resize(200, 200, records[:1])).To(Succeed())
			Expect(eng.Agents()).To(HaveLen(1))

			rec.Reset()
			eng.Frame(rec)
			Expect(rec.Curves()).To(HaveLen(1))
			Expect(rec.Fills()[0].A).To(Equal(uint8(255)))
		})

		It("keeps the previous state on invalid sizes", func() {
			eng.Frame(rec)
			cols := eng.Grid().Cols()
			Expect(eng.Resize(0, 100, records)).To(MatchError(flow.ErrInvalidCanvas))
			Expect(eng.Grid().Cols()).To(Equal(cols))
			Expect(eng.Progress()).To(BeNumerically(">", 0))
		})
	})

	Describe("no data", func() {
		It("renders background-only frames", func() {
			empty, err := engine.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(empty.Empty()).To(BeTrue())

			stats := empty.Frame(rec)
			Expect(stats.Curves).To(BeZero())
			Expect(rec.Curves()).To(BeEmpty())
			Expect(rec.Fills()).NotTo(BeEmpty())
		})
	})
})
