package plane_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/zplane/internal/dynamo"
	"github.com/san-kum/zplane/internal/plane"
)

var _ = Describe("Interaction", func() {
	var (
		vp *plane.Viewport
		in *plane.Interaction
	)

	BeforeEach(func() {
		v := plane.DefaultViewport()
		v.Center = complex(-0.5, 0.25)
		vp = &v
		in = plane.NewInteraction(vp)
	})

	Context("when idle", func() {
		It("starts idle with no cursor", func() {
			Expect(in.State()).To(Equal(plane.Idle))
			_, _, ok := in.Cursor()
			Expect(ok).To(BeFalse())
		})

		It("tracks the cursor without moving the view", func() {
			in.PointerMove(10, 20)
			x, y, ok := in.Cursor()
			Expect(ok).To(BeTrue())
			Expect([]float64{x, y}).To(Equal([]float64{10, 20}))
			Expect(vp.Center).To(Equal(complex(-0.5, 0.25)))
		})

		It("ignores a spurious pointer up", func() {
			in.PointerUp(300, 300)
			Expect(in.State()).To(Equal(plane.Idle))
			Expect(vp.Center).To(Equal(complex(-0.5, 0.25)))
			_, _, ok := in.Cursor()
			Expect(ok).To(BeFalse())
		})

		It("keeps the zoom anchor across a spurious pointer up", func() {
			in.PointerMove(100, 100)
			anchor := vp.ScreenToPlane(100, 100)

			in.PointerUp(700, 500)
			x, y, ok := in.Cursor()
			Expect(ok).To(BeTrue())
			Expect([]float64{x, y}).To(Equal([]float64{100, 100}))

			Expect(in.Zoom(4)).To(Succeed())
			Expect(real(vp.ScreenToPlane(100, 100))).To(BeNumerically("~", real(anchor), 1e-12))
			Expect(imag(vp.ScreenToPlane(100, 100))).To(BeNumerically("~", imag(anchor), 1e-12))
		})
	})

	Context("when dragging", func() {
		BeforeEach(func() {
			in.PointerDown(100, 100)
		})

		It("records a session anchored at the press", func() {
			Expect(in.State()).To(Equal(plane.Dragging))
			s, ok := in.Session()
			Expect(ok).To(BeTrue())
			Expect(s.AnchorX).To(Equal(100.0))
			Expect(s.AnchorY).To(Equal(100.0))
			Expect(s.AnchorCenter).To(Equal(complex(-0.5, 0.25)))
		})

		It("keeps the grabbed point under the pointer", func() {
			grabbed := vp.ScreenToPlane(100, 100)
			in.PointerMove(180, 40)
			got := vp.ScreenToPlane(180, 40)
			Expect(real(got)).To(BeNumerically("~", real(grabbed), 1e-12))
			Expect(imag(got)).To(BeNumerically("~", imag(grabbed), 1e-12))
		})

		It("restores the centre exactly after returning to the anchor", func() {
			for i := 0; i < 100; i++ {
				in.PointerMove(100+float64(i)*3.7, 100-float64(i)*1.3)
			}
			in.PointerMove(100, 100)
			Expect(vp.Center).To(Equal(complex(-0.5, 0.25)))
		})

		It("applies the release position and returns to idle", func() {
			in.PointerUp(150, 100)
			Expect(in.State()).To(Equal(plane.Idle))
			_, ok := in.Session()
			Expect(ok).To(BeFalse())
			Expect(real(vp.Center)).To(BeNumerically("~", -0.5-50*plane.DefaultScale, 1e-12))

			in.PointerMove(400, 400)
			Expect(real(vp.Center)).To(BeNumerically("~", -0.5-50*plane.DefaultScale, 1e-12))
		})

		It("re-anchors on a second press", func() {
			in.PointerMove(120, 100)
			moved := vp.Center
			in.PointerDown(300, 300)
			s, _ := in.Session()
			Expect(s.AnchorCenter).To(Equal(moved))
			Expect(s.AnchorX).To(Equal(300.0))
		})

		It("drops the session on cancel without moving", func() {
			in.PointerMove(180, 140)
			moved := vp.Center
			in.Cancel()
			Expect(in.State()).To(Equal(plane.Idle))
			in.PointerMove(10, 10)
			Expect(vp.Center).To(Equal(moved))
		})

		It("does not jump when zoomed mid-drag", func() {
			in.PointerMove(150, 120)
			Expect(in.Zoom(2)).To(Succeed())
			before := vp.ScreenToPlane(150, 120)
			in.PointerMove(150, 120)
			after := vp.ScreenToPlane(150, 120)
			Expect(real(after)).To(BeNumerically("~", real(before), 1e-12))
			Expect(imag(after)).To(BeNumerically("~", imag(before), 1e-12))
		})
	})

	Describe("zoom", func() {
		It("keeps the point under the cursor fixed", func() {
			in.PointerMove(640, 90)
			before := vp.ScreenToPlane(640, 90)
			Expect(in.Zoom(1.3)).To(Succeed())
			after := vp.ScreenToPlane(640, 90)
			Expect(real(after)).To(BeNumerically("~", real(before), 1e-12))
			Expect(imag(after)).To(BeNumerically("~", imag(before), 1e-12))
			Expect(vp.Scale).To(BeNumerically("~", plane.DefaultScale/1.3, 1e-15))
		})

		It("zooms about the centre before any pointer event", func() {
			Expect(in.Zoom(4)).To(Succeed())
			Expect(vp.Center).To(Equal(complex(-0.5, 0.25)))
		})

		It("treats a non-positive factor as a no-op", func() {
			err := in.Zoom(0)
			Expect(errors.Is(err, dynamo.ErrInvalidZoomFactor)).To(BeTrue())
			Expect(vp.Scale).To(Equal(plane.DefaultScale))
		})
	})
})
