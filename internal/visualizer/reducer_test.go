package visualizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visualizer-service/internal/models"
	"visualizer-service/internal/visualizer/drop"
)

func newReducer() *Reducer {
	return NewReducer(drop.Default())
}

func reduceAll(r *Reducer, state models.State, actions ...Action) models.State {
	for _, a := range actions {
		state = r.Reduce(state, a)
	}
	return state
}

func salesCard() *models.Card {
	return &models.Card{
		ID:                    17,
		Name:                  "Sales",
		Display:               models.DisplayLine,
		VisualizationSettings: map[string]any{},
	}
}

func salesDataset() *models.Dataset {
	return &models.Dataset{Data: models.DatasetData{
		Cols: []models.Column{{Name: "Date"}, {Name: "Total"}},
	}}
}

func queryFulfilled(card *models.Card, dataset *models.Dataset) FetchCardQuery {
	return FetchCardQuery{Status: Fulfilled, CardID: card.ID, Card: card, Dataset: dataset}
}

func columnDrop(source models.DataSource, name, zone string) HandleDrop {
	return HandleDrop{Event: models.DropEvent{
		Active: models.DraggedItem{
			ID:         "col-" + name,
			Kind:       models.DraggedColumn,
			DataSource: &source,
			Column:     &models.Column{Name: name},
		},
		Over: zone,
	}}
}

func TestInitialState(t *testing.T) {
	s := InitialState()
	assert.Empty(t, s.Past)
	assert.Empty(t, s.Future)
	assert.Equal(t, models.DisplayNone, s.Present.Display)
	assert.NotNil(t, s.Present.Columns)
	assert.NotNil(t, s.Datasets)
	assert.Nil(t, s.Error)
	assert.Nil(t, s.DraggedItem)
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestHistoryGatingSkipsIdenticalSnapshots(t *testing.T) {
	r := newReducer()
	s := reduceAll(r, InitialState(),
		SetDisplay{Display: models.DisplayBar},
		SetDisplay{Display: models.DisplayBar},
		UpdateSettings{Settings: map[string]any{"card.title": "A"}},
		UpdateSettings{Settings: map[string]any{"card.title": "A"}},
	)

	require.Len(t, s.Past, 2)
	for i := 1; i < len(s.Past); i++ {
		assert.False(t, equalItems(s.Past[i-1], s.Past[i]))
	}
	assert.False(t, equalItems(s.Past[len(s.Past)-1], s.Present))
}

func TestHistoryGatingTreatsDecodedListsAsEqual(t *testing.T) {
	r := newReducer()
	s := reduceAll(r, InitialState(),
		SetDisplay{Display: models.DisplayBar},
		UpdateSettings{Settings: map[string]any{"graph.dimensions": []string{"COLUMN_1"}}},
		UpdateSettings{Settings: map[string]any{"graph.dimensions": []any{"COLUMN_1"}}},
	)
	assert.Len(t, s.Past, 2)
}

func TestTrackedActionsAddAtMostOneEntry(t *testing.T) {
	r := newReducer()
	actions := []Action{
		SetDisplay{Display: models.DisplayLine},
		SetDisplay{Display: models.DisplayBar},
		SetDisplay{Display: models.DisplayBar},
		UpdateSettings{Settings: map[string]any{"pie.show_legend": true}},
		SetDisplay{Display: models.DisplayPie},
		UpdateSettings{Settings: map[string]any{}},
	}
	s := InitialState()
	for _, a := range actions {
		before := s
		s = r.Reduce(s, a)
		if equalItems(before.Present, s.Present) {
			assert.Equal(t, before.Past, s.Past, "after %s", a.Type())
			continue
		}
		require.Len(t, s.Past, len(before.Past)+1, "after %s", a.Type())
		assert.Equal(t, before.Present, s.Past[len(s.Past)-1])
	}
	assert.Len(t, s.Past, 4)
}

func TestUndoRedoAreInverse(t *testing.T) {
	r := newReducer()
	s := reduceAll(r, InitialState(),
		SetDisplay{Display: models.DisplayLine},
		UpdateSettings{Settings: map[string]any{"graph.x_axis.title_text": "Day"}},
		SetDisplay{Display: models.DisplayPivot},
	)
	require.Len(t, s.Past, 3)

	undone := r.Reduce(s, Undo{})
	assert.Len(t, undone.Past, 2)
	assert.Len(t, undone.Future, 1)
	assert.Equal(t, s, r.Reduce(undone, Redo{}))

	twice := r.Reduce(undone, Undo{})
	assert.Equal(t, undone, r.Reduce(twice, Redo{}))

	redone := r.Reduce(twice, Redo{})
	assert.Equal(t, twice, r.Reduce(redone, Undo{}))
}

func TestUndoRedoOnEmptyStacksAreNoops(t *testing.T) {
	r := newReducer()
	s := InitialState()
	assert.Equal(t, s, r.Reduce(s, Undo{}))
	assert.Equal(t, s, r.Reduce(s, Redo{}))
}

func TestNewEditClearsRedo(t *testing.T) {
	r := newReducer()
	s := reduceAll(r, InitialState(),
		SetDisplay{Display: models.DisplayLine},
		SetDisplay{Display: models.DisplayFunnel},
		Undo{},
	)
	require.Len(t, s.Future, 1)

	same := r.Reduce(s, SetDisplay{Display: models.DisplayLine})
	assert.Len(t, same.Future, 1, "a no-op edit keeps redo history")

	s = r.Reduce(s, UpdateSettings{Settings: map[string]any{"card.title": "x"}})
	assert.Empty(t, s.Future)
}

func TestCartesianSwitchPreservesContent(t *testing.T) {
	r := newReducer()
	sales := models.NewDataSource(models.DataSourceTypeCard, 17, "Sales")
	s := reduceAll(r, InitialState(),
		SetDisplay{Display: models.DisplayLine},
		columnDrop(sales, "Date", drop.ZoneXAxis),
		columnDrop(sales, "Total", drop.ZoneYAxis),
		UpdateSettings{Settings: map[string]any{"graph.show_values": true}},
	)
	before := s.Present

	s = r.Reduce(s, SetDisplay{Display: models.DisplayBar})
	assert.Equal(t, models.DisplayBar, s.Present.Display)
	assert.Equal(t, before.Columns, s.Present.Columns)
	assert.Equal(t, before.ColumnValuesMapping, s.Present.ColumnValuesMapping)
	assert.Equal(t, before.Settings, s.Present.Settings)
}

func TestNonCartesianSwitchResets(t *testing.T) {
	r := newReducer()
	sales := models.NewDataSource(models.DataSourceTypeCard, 17, "Sales")
	s := reduceAll(r, InitialState(),
		SetDisplay{Display: models.DisplayLine},
		columnDrop(sales, "Date", drop.ZoneXAxis),
	)
	require.NotEmpty(t, s.Present.Columns)

	pie := r.Reduce(s, SetDisplay{Display: models.DisplayPie})
	assert.Equal(t, models.DisplayPie, pie.Present.Display)
	assert.Empty(t, pie.Present.Columns)
	assert.Empty(t, pie.Present.ColumnValuesMapping)
	assert.Empty(t, pie.Present.Settings)

	pivot := r.Reduce(s, SetDisplay{Display: models.DisplayPivot})
	require.Len(t, pivot.Present.Columns, 1)
	assert.Equal(t, models.PivotGroupingColumnName, pivot.Present.Columns[0].Name)
	assert.Equal(t, "artificial", pivot.Present.Columns[0].Source)
	assert.Equal(t, "type/Integer", pivot.Present.Columns[0].BaseType)
	assert.Empty(t, pivot.Present.ColumnValuesMapping)

	cleared := r.Reduce(s, SetDisplay{Display: models.DisplayNone})
	assert.Equal(t, models.DisplayNone, cleared.Present.Display)
	assert.Empty(t, cleared.Present.Columns)
}

func TestCardQueryRebuildsEmptyVisualization(t *testing.T) {
	r := newReducer()
	s := r.Reduce(InitialState(), queryFulfilled(salesCard(), salesDataset()))

	p := s.Present
	assert.Equal(t, models.DisplayLine, p.Display)
	require.Len(t, p.Columns, 2)
	assert.Equal(t, "COLUMN_1", p.Columns[0].Name)
	assert.Equal(t, "COLUMN_2", p.Columns[1].Name)
	assert.Equal(t, []any{"field", "COLUMN_1", map[string]any{"base-type": ""}}, p.Columns[0].FieldRef)

	for name, original := range map[string]string{"COLUMN_1": "Date", "COLUMN_2": "Total"} {
		refs := p.ColumnValuesMapping[name]
		require.Len(t, refs, 1)
		require.NotNil(t, refs[0].Ref)
		assert.Equal(t, "card:17", refs[0].Ref.SourceID)
		assert.Equal(t, original, refs[0].Ref.OriginalName)
	}
	assert.Len(t, s.Past, 1)
	assert.Contains(t, s.Datasets, "card:17")
}

func TestCardQueryRewritesColumnSettings(t *testing.T) {
	r := newReducer()
	card := salesCard()
	card.Display = models.DisplayBar
	card.VisualizationSettings = map[string]any{
		"graph.dimensions": []any{"Total", "Date", "Missing"},
		"graph.metrics":    []string{"Total"},
		"card.title":       "Sales",
	}

	s := r.Reduce(InitialState(), queryFulfilled(card, salesDataset()))
	assert.Equal(t, []string{"COLUMN_2", "COLUMN_1"}, s.Present.Settings["graph.dimensions"])
	assert.Equal(t, []string{"COLUMN_2"}, s.Present.Settings["graph.metrics"])
	assert.Equal(t, "Sales", s.Present.Settings["card.title"])
	assert.Equal(t, []any{"Total", "Date", "Missing"}, card.VisualizationSettings["graph.dimensions"], "card settings are not modified")

	funnel := salesCard()
	funnel.Display = models.DisplayFunnel
	funnel.VisualizationSettings = map[string]any{"funnel.dimension": "Date", "funnel.metric": "Gone"}
	s = r.Reduce(InitialState(), queryFulfilled(funnel, salesDataset()))
	assert.Equal(t, "COLUMN_1", s.Present.Settings["funnel.dimension"])
	assert.NotContains(t, s.Present.Settings, "funnel.metric")
}

func TestCardQueryGuard(t *testing.T) {
	r := newReducer()
	sales := models.NewDataSource(models.DataSourceTypeCard, 3, "Other")
	s := reduceAll(r, InitialState(),
		SetDisplay{Display: models.DisplayBar},
		columnDrop(sales, "Region", drop.ZoneXAxis),
	)
	require.NotEmpty(t, s.Present.Columns)
	present := s.Present

	pie := salesCard()
	pie.Display = models.DisplayPie
	next := r.Reduce(s, queryFulfilled(pie, salesDataset()))
	assert.Equal(t, present, next.Present)
	assert.Len(t, next.Past, len(s.Past))
	assert.Contains(t, next.Datasets, "card:17", "bookkeeping still records the dataset")

	bar := salesCard()
	bar.Display = models.DisplayBar
	next = r.Reduce(s, queryFulfilled(bar, salesDataset()))
	assert.Equal(t, present, next.Present, "matching display with existing columns is not rebuilt")

	empty := r.Reduce(InitialState(), SetDisplay{Display: models.DisplayBar})
	next = r.Reduce(empty, queryFulfilled(bar, salesDataset()))
	assert.Len(t, next.Present.Columns, 2, "matching display without columns is rebuilt")

	noCard := r.Reduce(InitialState(), FetchCardQuery{Status: Fulfilled, CardID: 17, Dataset: salesDataset()})
	assert.Equal(t, models.DisplayNone, noCard.Present.Display)
	assert.Empty(t, noCard.Past)
	assert.Contains(t, noCard.Datasets, "card:17")
}

func TestRemoveDataSourceFiltersReferences(t *testing.T) {
	r := newReducer()
	orders := models.NewDataSource(models.DataSourceTypeCard, 5, "Orders")
	s := reduceAll(r, InitialState(),
		FetchCard{Status: Fulfilled, CardID: 5, Card: &models.Card{ID: 5, Name: "Orders", Display: models.DisplayLine}},
		SetDisplay{Display: models.DisplayLine},
		columnDrop(orders, "Date", drop.ZoneXAxis),
		FetchCardQuery{Status: Fulfilled, CardID: 5, Dataset: salesDataset()},
	)
	s.Present.ColumnValuesMapping["COLUMN_1"] = append(s.Present.ColumnValuesMapping["COLUMN_1"],
		models.ColumnValueSource{NameRef: models.NameRef("card:9", "Date")},
		models.ColumnValueSource{NameRef: models.NameRef("card:5", "Other")},
	)
	pastBefore := len(s.Past)

	s = r.Reduce(s, RemoveDataSource{Source: orders})
	require.Len(t, s.Present.Columns, 1, "columns are kept")
	refs := s.Present.ColumnValuesMapping["COLUMN_1"]
	require.Len(t, refs, 1)
	assert.Equal(t, "card:9", refs[0].DataSourceID())
	assert.Empty(t, s.Cards)
	assert.NotContains(t, s.Datasets, "card:5")
	assert.NotContains(t, s.ExpandedDataSources, "card:5")
	assert.NotContains(t, s.LoadingDataSources, "card:5")
	assert.NotContains(t, s.LoadingDatasets, "card:5")
	assert.Len(t, s.Past, pastBefore+1)

	again := r.Reduce(s, RemoveDataSource{Source: models.DataSource{Type: models.DataSourceTypeCard, SourceID: 9}})
	assert.Empty(t, again.Present.ColumnValuesMapping["COLUMN_1"], "column left with no value sources")
	assert.Len(t, again.Present.Columns, 1)
}

func TestFetchLifecycleBookkeeping(t *testing.T) {
	r := newReducer()
	s := r.Reduce(InitialState(), FetchCard{Status: Pending, CardID: 17})
	assert.True(t, s.LoadingDataSources["card:17"])

	s = r.Reduce(s, FetchCard{Status: Fulfilled, CardID: 17, Card: salesCard()})
	assert.False(t, s.LoadingDataSources["card:17"])
	assert.True(t, s.ExpandedDataSources["card:17"])
	require.Len(t, s.Cards, 1)
	assert.Empty(t, s.Past, "card definitions alone do not change the visualization")

	updated := salesCard()
	updated.Name = "Sales v2"
	s = r.Reduce(s, FetchCard{Status: Fulfilled, CardID: 17, Card: updated})
	require.Len(t, s.Cards, 1)
	assert.Equal(t, "Sales v2", s.Cards[0].Name)

	s = r.Reduce(s, FetchCardQuery{Status: Pending, CardID: 17})
	assert.True(t, s.LoadingDatasets["card:17"])
	s = r.Reduce(s, FetchCardQuery{Status: Rejected, CardID: 17})
	assert.False(t, s.LoadingDatasets["card:17"])
	require.NotNil(t, s.Error)
	assert.Equal(t, MsgFetchCardQueryFailed, *s.Error)

	s = r.Reduce(s, FetchCard{Status: Pending, CardID: 18})
	assert.Nil(t, s.Error, "a new fetch clears the last error")
	s = r.Reduce(s, FetchCard{Status: Rejected, CardID: 18, Error: "upstream unavailable"})
	assert.Equal(t, "upstream unavailable", *s.Error)
	assert.False(t, s.LoadingDataSources["card:18"])
}

func TestFetchChainClearsBothLoadingFlags(t *testing.T) {
	r := newReducer()
	s := reduceAll(r, InitialState(),
		FetchCard{Status: Pending, CardID: 17},
		FetchCardQuery{Status: Pending, CardID: 17},
	)
	assert.True(t, s.LoadingDataSources["card:17"])
	assert.True(t, s.LoadingDatasets["card:17"])

	s = r.Reduce(s, FetchCard{Status: Fulfilled, CardID: 17, Card: salesCard()})
	assert.False(t, s.LoadingDataSources["card:17"], "the card's own flag is cleared")
	assert.True(t, s.LoadingDatasets["card:17"], "the query is still loading")

	s = r.Reduce(s, queryFulfilled(salesCard(), salesDataset()))
	assert.Equal(t, map[string]bool{"card:17": false}, s.LoadingDataSources)
	assert.Equal(t, map[string]bool{"card:17": false}, s.LoadingDatasets)
	assert.Nil(t, s.Error)
}

func TestPresentationStateIsNotTracked(t *testing.T) {
	r := newReducer()
	item := &models.DraggedItem{ID: "x", Kind: models.DraggedWellItem, Column: &models.Column{Name: "COLUMN_1"}}
	s := reduceAll(r, InitialState(),
		SetDraggedItem{Item: item},
		ToggleDataSourceExpanded{ID: "card:1"},
	)
	require.NotNil(t, s.DraggedItem)
	assert.True(t, s.ExpandedDataSources["card:1"])
	assert.Empty(t, s.Past)

	s = r.Reduce(s, ToggleDataSourceExpanded{ID: "card:1"})
	assert.False(t, s.ExpandedDataSources["card:1"])
	s = r.Reduce(s, SetDraggedItem{})
	assert.Nil(t, s.DraggedItem)
}

func TestHandleDropClearsDraggedItem(t *testing.T) {
	called := false
	r := NewReducer(drop.Registry{
		Cartesian: func(*models.HistoryItem, models.DropEvent) {
			called = true
		},
	})
	item := &models.DraggedItem{ID: "x", Kind: models.DraggedColumn}

	s := reduceAll(r, InitialState(), SetDraggedItem{Item: item}, HandleDrop{})
	assert.Nil(t, s.DraggedItem)
	assert.False(t, called, "drops without a display are ignored")

	s = reduceAll(r, s, SetDisplay{Display: models.DisplayArea}, SetDraggedItem{Item: item}, HandleDrop{})
	assert.True(t, called)
	assert.Nil(t, s.DraggedItem)

	called = false
	s = reduceAll(r, s, SetDisplay{Display: models.DisplayFunnel}, HandleDrop{})
	assert.False(t, called, "only the handler for the current display runs")
}

func TestResetVisualizer(t *testing.T) {
	r := newReducer()
	s := reduceAll(r, InitialState(),
		FetchCard{Status: Fulfilled, CardID: 17, Card: salesCard()},
		queryFulfilled(salesCard(), salesDataset()),
		ToggleDataSourceExpanded{ID: "card:17"},
	)
	require.NotEmpty(t, s.Past)

	assert.Equal(t, InitialState(), r.Reduce(s, ResetVisualizer{}))
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	r := newReducer()
	s := r.Reduce(InitialState(), SetDisplay{Display: models.DisplayLine})
	snapshot := cloneState(s)

	sales := models.NewDataSource(models.DataSourceTypeCard, 17, "Sales")
	reduceAll(r, s,
		columnDrop(sales, "Date", drop.ZoneXAxis),
		UpdateSettings{Settings: map[string]any{"a": 1}},
		RemoveDataSource{Source: sales},
		ToggleDataSourceExpanded{ID: "card:17"},
	)
	assert.Equal(t, snapshot, s)
}

func TestScenarioAddSalesCard(t *testing.T) {
	r := newReducer()
	s := InitialState()

	card := salesCard()
	s = reduceAll(r, s,
		FetchCard{Status: Pending, CardID: 17},
		FetchCardQuery{Status: Pending, CardID: 17},
		FetchCard{Status: Fulfilled, CardID: 17, Card: card},
		queryFulfilled(card, salesDataset()),
	)

	assert.Equal(t, models.DisplayLine, s.Present.Display)
	require.Len(t, s.Present.Columns, 2)
	assert.Equal(t, "COLUMN_1", s.Present.Columns[0].Name)
	ref := s.Present.ColumnValuesMapping["COLUMN_1"][0].Ref
	require.NotNil(t, ref)
	assert.Equal(t, "card:17", ref.SourceID)
	assert.Equal(t, "Date", ref.OriginalName)
}
