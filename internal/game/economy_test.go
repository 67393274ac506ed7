package game

import (
	"reflect"
	"testing"
)

func TestDistributeResources_SettlementAndCity(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	p2 := g.Players["p2"]

	// p1's settlement corner touches the forest and the fields, both
	// producing on 5. p2's city corner touches forest, fields and hills.
	p1.Settlements = append(p1.Settlements, "0:0:2")
	p2.Cities = append(p2.Cities, "0:0:1")

	grants := g.DistributeResources(5)

	want := []Grant{
		{PlayerID: "p1", Resource: ResourceWood, Amount: 1},
		{PlayerID: "p1", Resource: ResourceWheat, Amount: 1},
		{PlayerID: "p2", Resource: ResourceWood, Amount: 2},
		{PlayerID: "p2", Resource: ResourceWheat, Amount: 2},
	}
	if !reflect.DeepEqual(grants, want) {
		t.Errorf("grants = %+v, want %+v", grants, want)
	}
	if p1.Hand.Wood != 1 || p1.Hand.Wheat != 1 {
		t.Errorf("p1 hand not credited: %+v", p1.Hand)
	}
	if p2.Hand.Wood != 2 || p2.Hand.Wheat != 2 {
		t.Errorf("p2 hand not credited: %+v", p2.Hand)
	}
}

func TestDistributeResources_CityOnlyHex(t *testing.T) {
	g := gameplayGame(2)
	p2 := g.Players["p2"]
	p2.Cities = append(p2.Cities, "1:0:0")

	grants := g.DistributeResources(8)
	want := []Grant{{PlayerID: "p2", Resource: ResourceBrick, Amount: 2}}
	if !reflect.DeepEqual(grants, want) {
		t.Errorf("grants = %+v, want %+v", grants, want)
	}
}

func TestDistributeResources_RobberBlocksHex(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	p1.Settlements = append(p1.Settlements, "0:0:2")
	g.Board.RobberHex = "0:0"

	// The forest is blocked; the fields still produce for the same
	// settlement.
	grants := g.DistributeResources(5)
	want := []Grant{{PlayerID: "p1", Resource: ResourceWheat, Amount: 1}}
	if !reflect.DeepEqual(grants, want) {
		t.Errorf("grants = %+v, want %+v", grants, want)
	}
	if p1.Hand.Wood != 0 {
		t.Errorf("expected no wood from the blocked forest, got %d", p1.Hand.Wood)
	}
}

func TestDistributeResources_NoMatchingNumber(t *testing.T) {
	g := gameplayGame(2)
	g.Players["p1"].Settlements = append(g.Players["p1"].Settlements, "0:0:2")

	if grants := g.DistributeResources(11); len(grants) != 0 {
		t.Errorf("expected no production on 11, got %+v", grants)
	}
}

func TestResourceForTerrain_DesertProducesNothing(t *testing.T) {
	if _, ok := ResourceForTerrain(testBoard().Tiles[3].Terrain); ok {
		t.Error("expected the desert to produce nothing")
	}
}
