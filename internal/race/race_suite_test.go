package race_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRace(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Race Engine Suite")
}
