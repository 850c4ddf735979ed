package generation_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-loot/internal/clients/textgen"
	textgenmock "github.com/KirkDiggler/rpg-loot/internal/clients/textgen/mock"
	"github.com/KirkDiggler/rpg-loot/internal/engine"
	enginemock "github.com/KirkDiggler/rpg-loot/internal/engine/mock"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/metrics"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generation"
	"github.com/KirkDiggler/rpg-loot/internal/reconciler"
	reconcilermock "github.com/KirkDiggler/rpg-loot/internal/reconciler/mock"
	"github.com/KirkDiggler/rpg-loot/internal/schema"
)

func swordResponse(name string) *textgen.GenerateOutput {
	return &textgen.GenerateOutput{
		Model: "llama3.2",
		Text: fmt.Sprintf(`{"name":%q,"type":"Weapon","subType":"Sword","tier":"Gold",`+
			`"description":"A fine blade.","stats":{"damage":30},"rarity":999}`, name),
	}
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockTextGen    *textgenmock.MockClient
	mockEngine     *enginemock.MockEngine
	mockReconciler *reconcilermock.MockReconciler
	orchestrator   generation.Service
	ctx            context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTextGen = textgenmock.NewMockClient(s.ctrl)
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)
	s.mockReconciler = reconcilermock.NewMockReconciler(s.ctrl)
	s.ctx = context.Background()

	orch, err := generation.NewOrchestrator(&generation.Config{
		TextGen:    s.mockTextGen,
		Engine:     s.mockEngine,
		Reconciler: s.mockReconciler,
	})
	s.Require().NoError(err)
	s.orchestrator = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// reconcileEcho returns an item built from the attempt's request
func reconcileEcho(_ string, req loot.GenerationRequest, subType string) (*loot.LootItem, error) {
	return &loot.LootItem{
		Name:    fmt.Sprintf("%s %s", req.Tier, subType),
		Type:    req.ItemType,
		SubType: subType,
		Tier:    req.Tier,
		SetName: req.SetName,
	}, nil
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidatesConfig() {
	_, err := generation.NewOrchestrator(&generation.Config{Concurrency: -1})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	for _, field := range []string{"TextGen", "Engine", "Reconciler", "Concurrency"} {
		s.Assert().Contains(err.Error(), field)
	}
}

func (s *OrchestratorTestSuite) TestPartialFailureKeepsAttemptOrder() {
	e, err := engine.New(&engine.Config{DiceRoller: dice.DefaultRoller})
	s.Require().NoError(err)
	validator, err := schema.NewValidator()
	s.Require().NoError(err)
	r, err := reconciler.New(&reconciler.Config{Engine: e, Validator: validator})
	s.Require().NoError(err)
	m := metrics.New()

	orch, err := generation.NewOrchestrator(&generation.Config{
		TextGen:    s.mockTextGen,
		Engine:     e,
		Reconciler: r,
		Metrics:    m,
	})
	s.Require().NoError(err)

	gomock.InOrder(
		s.mockTextGen.EXPECT().Generate(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("connection refused")),
		s.mockTextGen.EXPECT().Generate(s.ctx, gomock.Any()).Return(swordResponse("Second Light"), nil),
		s.mockTextGen.EXPECT().Generate(s.ctx, gomock.Any()).Return(&textgen.GenerateOutput{Text: "I cannot help with that."}, nil),
		s.mockTextGen.EXPECT().Generate(s.ctx, gomock.Any()).Return(swordResponse("Fourth Dawn"), nil),
	)

	out, err := orch.Generate(s.ctx, &generation.GenerateInput{Request: loot.GenerationRequest{
		Tier:     loot.TierGold,
		Count:    4,
		ItemType: loot.ItemTypeWeapon,
		SubType:  "sword",
	}})
	s.Require().NoError(err)

	s.Require().Len(out.Items, 2)
	s.Assert().Equal("Second Light", out.Items[0].Name)
	s.Assert().Equal("Fourth Dawn", out.Items[1].Name)
	s.Assert().Equal(4, out.Attempts)

	s.Require().Len(out.Failures, 2)
	s.Assert().Equal(1, out.Failures[0].Attempt)
	s.Assert().Equal(3, out.Failures[1].Attempt)
	for _, f := range out.Failures {
		s.Assert().True(errors.IsGenerationFailed(f.Err))
		s.Assert().Equal(loot.ItemTypeWeapon, f.ItemType)
		s.Assert().Equal("Sword", f.SubType)
	}
	s.Assert().Equal(errors.CodeUnavailable.String(), errors.GetMeta(out.Failures[0].Err)["cause_code"])
	s.Assert().Equal(errors.CodeMalformedResponse.String(), errors.GetMeta(out.Failures[1].Err)["cause_code"])

	families, err := m.Registry().Gather()
	s.Require().NoError(err)
	counts := map[string]float64{}
	for _, family := range families {
		if family.GetName() != metrics.MetricNameGenerationAttempts {
			continue
		}
		for _, metric := range family.GetMetric() {
			counts[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
		}
	}
	s.Assert().Equal(map[string]float64{"success": 2, "failure": 2}, counts)
}

func (s *OrchestratorTestSuite) TestDomainMismatchFailsBeforeAnyCall() {
	_, err := s.orchestrator.Generate(s.ctx, &generation.GenerateInput{Request: loot.GenerationRequest{
		Tier:     loot.TierGold,
		Count:    1,
		ItemType: loot.ItemTypeWeapon,
		SubType:  "Helmet",
	}})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestMalformedRequests() {
	testCases := []struct {
		name string
		req  loot.GenerationRequest
	}{
		{"zero count", loot.GenerationRequest{Tier: loot.TierGold, Count: 0}},
		{"unknown tier", loot.GenerationRequest{Tier: "Mythril", Count: 1}},
		{"unknown item type", loot.GenerationRequest{Tier: loot.TierGold, Count: 1, ItemType: "Trinket"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.Generate(s.ctx, &generation.GenerateInput{Request: tc.req})
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}

	_, err := s.orchestrator.Generate(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestResolvesTypeAndSubTypePerAttempt() {
	s.mockEngine.EXPECT().PickItemType().Return(loot.ItemTypeArmor, nil)
	s.mockEngine.EXPECT().PickSubType(loot.ItemTypeArmor).Return("Boots", nil)

	s.mockTextGen.EXPECT().Generate(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, input *textgen.GenerateInput) (*textgen.GenerateOutput, error) {
			s.Assert().Equal("mistral", input.Model)
			s.Assert().Contains(input.Prompt, "Create one Silver Armor item")
			s.Assert().Contains(input.Prompt, "a Boots.")
			s.Assert().NotEmpty(input.Format)
			return &textgen.GenerateOutput{Text: "{}"}, nil
		})
	s.mockReconciler.EXPECT().Reconcile("{}", gomock.Any(), "Boots").DoAndReturn(
		func(raw string, req loot.GenerationRequest, subType string) (*loot.LootItem, error) {
			s.Assert().Equal(loot.ItemTypeArmor, req.ItemType)
			s.Assert().Equal(1, req.Count)
			return reconcileEcho(raw, req, subType)
		})

	out, err := s.orchestrator.Generate(s.ctx, &generation.GenerateInput{Request: loot.GenerationRequest{
		Tier:  loot.TierSilver,
		Count: 1,
		Model: "mistral",
	}})
	s.Require().NoError(err)
	s.Require().Len(out.Items, 1)
	s.Assert().Equal(loot.ItemTypeArmor, out.Items[0].Type)
	s.Assert().Equal("Boots", out.Items[0].SubType)
}

func (s *OrchestratorTestSuite) TestSubTypeImpliesItemType() {
	s.mockTextGen.EXPECT().Generate(s.ctx, gomock.Any()).Return(&textgen.GenerateOutput{Text: "{}"}, nil)
	s.mockReconciler.EXPECT().Reconcile("{}", gomock.Any(), "Amulet").DoAndReturn(reconcileEcho)

	out, err := s.orchestrator.Generate(s.ctx, &generation.GenerateInput{Request: loot.GenerationRequest{
		Tier:    loot.TierBronze,
		Count:   1,
		SubType: "AMULET",
	}})
	s.Require().NoError(err)
	s.Require().Len(out.Items, 1)
	s.Assert().Equal(loot.ItemTypeAccessory, out.Items[0].Type)
}

func (s *OrchestratorTestSuite) TestEngineFailureIsAnAttemptFailure() {
	s.mockEngine.EXPECT().PickSubType(loot.ItemTypeConsumable).Return("", errors.Internal("dice lost"))

	out, err := s.orchestrator.Generate(s.ctx, &generation.GenerateInput{Request: loot.GenerationRequest{
		Tier:     loot.TierBronze,
		Count:    1,
		ItemType: loot.ItemTypeConsumable,
	}})
	s.Require().NoError(err)
	s.Assert().Empty(out.Items)
	s.Require().Len(out.Failures, 1)
	s.Assert().True(errors.IsGenerationFailed(out.Failures[0].Err))
}

func (s *OrchestratorTestSuite) TestCancellationReturnsCompletedItems() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	gomock.InOrder(
		s.mockTextGen.EXPECT().Generate(ctx, gomock.Any()).Return(swordResponse("Kept"), nil),
		s.mockTextGen.EXPECT().Generate(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ *textgen.GenerateInput) (*textgen.GenerateOutput, error) {
				cancel()
				return nil, errors.FromContext(ctx.Err())
			}),
	)
	s.mockReconciler.EXPECT().Reconcile(gomock.Any(), gomock.Any(), "Sword").DoAndReturn(reconcileEcho)

	out, err := s.orchestrator.Generate(ctx, &generation.GenerateInput{Request: loot.GenerationRequest{
		Tier:     loot.TierGold,
		Count:    5,
		ItemType: loot.ItemTypeWeapon,
		SubType:  "Sword",
	}})
	s.Require().NoError(err)
	s.Assert().Len(out.Items, 1)
	s.Assert().Equal(2, out.Attempts)
	s.Require().Len(out.Failures, 1)
	s.Assert().Equal(2, out.Failures[0].Attempt)
}

func (s *OrchestratorTestSuite) TestConcurrentAttemptsStayBounded() {
	orch, err := generation.NewOrchestrator(&generation.Config{
		TextGen:     s.mockTextGen,
		Engine:      s.mockEngine,
		Reconciler:  s.mockReconciler,
		Concurrency: 3,
	})
	s.Require().NoError(err)

	var (
		inFlight    atomic.Int32
		maxInFlight atomic.Int32
		calls       atomic.Int32
	)
	s.mockTextGen.EXPECT().Generate(s.ctx, gomock.Any()).Times(6).DoAndReturn(
		func(_ context.Context, _ *textgen.GenerateInput) (*textgen.GenerateOutput, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				seen := maxInFlight.Load()
				if n <= seen || maxInFlight.CompareAndSwap(seen, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)

			if calls.Add(1)%2 == 0 {
				return nil, errors.Unavailable("busy")
			}
			return &textgen.GenerateOutput{Text: "{}"}, nil
		})
	s.mockReconciler.EXPECT().Reconcile("{}", gomock.Any(), "Gem").Times(3).DoAndReturn(reconcileEcho)

	out, err := orch.Generate(s.ctx, &generation.GenerateInput{Request: loot.GenerationRequest{
		Tier:     loot.TierPlatinum,
		Count:    6,
		ItemType: loot.ItemTypeMaterial,
		SubType:  "Gem",
	}})
	s.Require().NoError(err)

	s.Assert().Equal(6, out.Attempts)
	s.Assert().Len(out.Items, 3)
	s.Require().Len(out.Failures, 3)
	s.Assert().LessOrEqual(maxInFlight.Load(), int32(3))
	for i := 1; i < len(out.Failures); i++ {
		s.Assert().Less(out.Failures[i-1].Attempt, out.Failures[i].Attempt)
	}
}

func (s *OrchestratorTestSuite) TestGenerateSetSkipsFailedPiece() {
	s.mockEngine.EXPECT().PickSubType(loot.ItemTypeWeapon).Return("Staff", nil)
	s.mockEngine.EXPECT().PickSubType(loot.ItemTypeArmor).Return("Robe", nil)
	s.mockEngine.EXPECT().PickSubType(loot.ItemTypeAccessory).Return("Ring", nil)

	var mu sync.Mutex
	var prompts []string
	s.mockTextGen.EXPECT().Generate(s.ctx, gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, input *textgen.GenerateInput) (*textgen.GenerateOutput, error) {
			mu.Lock()
			prompts = append(prompts, input.Prompt)
			mu.Unlock()
			if strings.Contains(input.Prompt, "Legendary Armor") {
				return nil, errors.NotFound("model not installed")
			}
			return &textgen.GenerateOutput{Text: "{}"}, nil
		})
	s.mockReconciler.EXPECT().Reconcile("{}", gomock.Any(), gomock.Any()).Times(2).DoAndReturn(reconcileEcho)

	out, err := s.orchestrator.GenerateSet(s.ctx, &generation.GenerateSetInput{
		SetName:   "Ashen Vigil",
		Tier:      loot.TierLegendary,
		ItemTypes: []loot.ItemType{loot.ItemTypeWeapon, loot.ItemTypeArmor, loot.ItemTypeAccessory},
	})
	s.Require().NoError(err)

	s.Require().Len(out.Items, 2)
	s.Assert().Equal(loot.ItemTypeWeapon, out.Items[0].Type)
	s.Assert().Equal(loot.ItemTypeAccessory, out.Items[1].Type)
	for _, item := range out.Items {
		s.Assert().Equal("Ashen Vigil", item.SetName)
	}

	s.Require().Len(out.Failures, 1)
	s.Assert().Equal(2, out.Failures[0].Attempt)
	s.Assert().Equal(loot.ItemTypeArmor, out.Failures[0].ItemType)

	s.Require().Len(prompts, 3)
	for _, p := range prompts {
		s.Assert().Contains(p, `"Ashen Vigil"`)
	}
}

func (s *OrchestratorTestSuite) TestGenerateSetValidatesBeforeAnyCall() {
	testCases := []struct {
		name  string
		input *generation.GenerateSetInput
	}{
		{
			name:  "missing set name",
			input: &generation.GenerateSetInput{Tier: loot.TierGold, ItemTypes: []loot.ItemType{loot.ItemTypeWeapon}},
		},
		{
			name:  "no item types",
			input: &generation.GenerateSetInput{SetName: "Ashen Vigil", Tier: loot.TierGold},
		},
		{
			name: "unknown item type late in the list",
			input: &generation.GenerateSetInput{
				SetName:   "Ashen Vigil",
				Tier:      loot.TierGold,
				ItemTypes: []loot.ItemType{loot.ItemTypeWeapon, "Trinket"},
			},
		},
		{
			name:  "empty item type",
			input: &generation.GenerateSetInput{SetName: "Ashen Vigil", Tier: loot.TierGold, ItemTypes: []loot.ItemType{""}},
		},
		{
			name:  "unknown tier",
			input: &generation.GenerateSetInput{SetName: "Ashen Vigil", Tier: "Tin", ItemTypes: []loot.ItemType{loot.ItemTypeWeapon}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.GenerateSet(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err), err.Error())
		})
	}
}
