package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paymax/internal/domain"
	"paymax/internal/parser"
	"paymax/mocks"
)

func TestRegistry_SelectBestParser_DominantFormat(t *testing.T) {
	generic := new(mocks.MockPayslipParser)
	generic.On("Format").Return(domain.FormatGeneric).Maybe()
	military := new(mocks.MockPayslipParser)
	military.On("Format").Return(domain.FormatMilitary)

	r := parser.NewRegistry()
	r.Register(generic)
	r.Register(military)

	// Dominant military text selects the format-declaring parser without
	// consulting any scores.
	selected := r.SelectBestParser(militaryText)
	require.NotNil(t, selected)
	assert.Same(t, military, selected.(*mocks.MockPayslipParser))
	generic.AssertNotCalled(t, "Score", mock.Anything)
}

func TestRegistry_SelectBestParser_ScoreComparison(t *testing.T) {
	p1 := new(mocks.MockPayslipParser)
	p1.On("Score", mock.Anything).Return(2)
	p2 := new(mocks.MockPayslipParser)
	p2.On("Score", mock.Anything).Return(5)

	r := parser.NewRegistry()
	r.Register(p1)
	r.Register(p2)

	selected := r.SelectBestParser("unremarkable text")
	assert.Same(t, p2, selected.(*mocks.MockPayslipParser))
}

func TestRegistry_SelectBestParser_TieKeepsFirstRegistered(t *testing.T) {
	p1 := new(mocks.MockPayslipParser)
	p1.On("Score", mock.Anything).Return(3)
	p2 := new(mocks.MockPayslipParser)
	p2.On("Score", mock.Anything).Return(3)

	r := parser.NewRegistry()
	r.Register(p1)
	r.Register(p2)

	selected := r.SelectBestParser("unremarkable text")
	assert.Same(t, p1, selected.(*mocks.MockPayslipParser))
}

func TestRegistry_SelectBestParser_Empty(t *testing.T) {
	assert.Nil(t, parser.NewRegistry().SelectBestParser("anything"))
}

func TestRegistry_SelectByFormat(t *testing.T) {
	military := new(mocks.MockPayslipParser)
	military.On("Format").Return(domain.FormatMilitary)

	r := parser.NewRegistry()
	r.Register(military)

	assert.NotNil(t, r.SelectByFormat(domain.FormatMilitary))
	assert.Nil(t, r.SelectByFormat(domain.FormatCorporate))
	assert.Equal(t, 1, r.Len())
}
