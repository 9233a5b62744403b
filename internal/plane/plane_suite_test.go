package plane_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPlane(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Plane Suite")
}
