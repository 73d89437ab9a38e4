package swagger_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/contractly/timesheet-management/internal/transport/swagger"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("LoadSpec", func() {
	It("should load and validate the served OpenAPI document", func() {
		doc, err := swagger.LoadSpec(context.Background(), "../../../api/openapi.yml")

		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Info.Title).To(Equal("Timesheet Management API"))

		for _, path := range []string{
			"/auth/login",
			"/timesheets",
			"/timesheets/{id}/approve",
			"/timesheets/{id}/reject",
			"/reports/export",
		} {
			Expect(doc.Paths.Find(path)).ToNot(BeNil(), "missing path %s", path)
		}
	})

	It("should fail for a missing file", func() {
		_, err := swagger.LoadSpec(context.Background(), "nope.yml")
		Expect(err).To(HaveOccurred())
	})
})
