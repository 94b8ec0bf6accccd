package script_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/roll"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/filters/script"
	"github.com/KirkDiggler/babonus/internal/proficiency"
	"github.com/KirkDiggler/babonus/internal/testutils"
)

type ScriptTestSuite struct {
	suite.Suite
	filter *script.Filter
	rc     *roll.Context
}

func (s *ScriptTestSuite) SetupTest() {
	var err error
	s.filter, err = script.New(&script.Config{Trees: proficiency.NewTrees()})
	s.Require().NoError(err)

	fighter := testutils.CreateTestFighter()
	s.rc = roll.NewItemContext(babonus.TypeAttack, fighter.Item(testutils.TestSwordID), roll.Details{})
}

func (s *ScriptTestSuite) compile(src string) func(*roll.Context) bool {
	raw, err := json.Marshal(src)
	s.Require().NoError(err)
	pred, err := s.filter.Compile(raw)
	s.Require().NoError(err)
	s.Require().NotNil(pred)
	return pred
}

func (s *ScriptTestSuite) TestNew_RequiresTrees() {
	_, err := script.New(&script.Config{})
	s.Error(err)

	_, err = script.New(nil)
	s.Error(err)
}

func (s *ScriptTestSuite) TestExpression() {
	s.True(s.compile(`actor.abilities.str.mod >= 3`)(s.rc))
	s.False(s.compile(`item.baseItem == "dagger"`)(s.rc))
	s.True(s.compile(`details.kind == "attack" and target == nil`)(s.rc))
}

func (s *ScriptTestSuite) TestChunk() {
	pred := s.compile(`
		local found = false
		for _, p in ipairs(item.properties) do
			if p == "ver" then found = true end
		end
		return found`)
	s.True(pred(s.rc))
}

func (s *ScriptTestSuite) TestHelpers() {
	s.True(s.compile(`babonus.hasTrait("weapon", "longsword")`)(s.rc))
	s.False(s.compile(`babonus.hasTrait("tool", "smith")`)(s.rc))
	s.True(s.compile(`babonus.resolvePath("smith", "tool")[1] == "art"`)(s.rc))
	s.False(s.compile(`babonus.hasStatus("prone")`)(s.rc))
}

func (s *ScriptTestSuite) TestSandbox() {
	s.True(s.compile(`os == nil and io == nil and load == nil and require == nil and math.random == nil`)(s.rc))
	s.True(s.compile(`math.floor(2.5) == 2 and string.upper("a") == "A"`)(s.rc))
}

func (s *ScriptTestSuite) TestRuntimeErrorDoesNotMatch() {
	pred := s.compile(`error("boom")`)
	s.False(pred(s.rc))

	_, err := s.filter.Evaluate(`error("boom")`, s.rc)
	s.Error(err)

	s.False(s.compile(`os.exit(1)`)(s.rc))
}

func (s *ScriptTestSuite) TestEndlessLoopIsStopped() {
	s.False(s.compile(`while true do end`)(s.rc))

	_, err := s.filter.Evaluate(`while true do end`, s.rc)
	s.Require().Error(err)
	s.Contains(err.Error(), "instruction budget")
}

func (s *ScriptTestSuite) TestBoundedLoopCompletes() {
	s.True(s.compile(`
		local total = 0
		for i = 1, 1000 do total = total + i end
		return total == 500500`)(s.rc))
}

func (s *ScriptTestSuite) TestCompileErrors() {
	_, err := s.filter.Compile(json.RawMessage(`"return (("`))
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.filter.Compile(json.RawMessage(`["not","a","string"]`))
	s.Error(err)
}

func (s *ScriptTestSuite) TestEmptyPayload() {
	for _, raw := range []string{``, `null`, `""`, `"   "`} {
		pred, err := s.filter.Compile(json.RawMessage(raw))
		s.NoError(err)
		s.Nil(pred, raw)
	}
}

func TestScriptTestSuite(t *testing.T) {
	suite.Run(t, new(ScriptTestSuite))
}
