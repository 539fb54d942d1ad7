package models

import (
	"fmt"

	"bitbucket.org/ksar/surveillance_backend/config"
	"bitbucket.org/ksar/surveillance_backend/surveillance"
	"github.com/sirupsen/logrus"
)

/*
caches:
	UnitTreeGen:$unitId -> generation, bumped whenever a fact lands on the unit's vessel
	UnitTree:$unitId:$generation -> reconstructed tree
*/

// unitTreeCacheWriteHook runs between reconstructing a tree and caching it.
var unitTreeCacheWriteHook func()

func unitTreeGenKey(unitId int) string {
	return fmt.Sprintf("UnitTreeGen:%d", unitId)
}

func unitTreeCacheKey(unitId int, generation int64) string {
	return fmt.Sprintf("UnitTree:%d:%d", unitId, generation)
}

// RemoveUnitTreeCache moves the unit to a new generation. A reader that
// reconstructed from older facts can only write under the old key.
func RemoveUnitTreeCache(unitId int) error {
	if unitId == 0 {
		return nil
	}
	generation, err := config.IncrRedisCounter(unitTreeGenKey(unitId))
	if err != nil {
		return err
	}
	return config.RemoveRedisKey(unitTreeCacheKey(unitId, generation-1))
}

func logIntegrityViolation(funcName string, context string, vesselId int, err error) {
	fields := logrus.Fields{
		"module":   "models",
		"funcName": funcName,
		"context":  context,
		"vesselId": vesselId,
	}
	if ie, ok := surveillance.AsIntegrityError(err); ok {
		fields["violation"] = ie.Kind()
		fields["placementId"] = ie.PlacementID
		fields["containerSystemId"] = ie.ContainerSystemID
		fields["loadIds"] = ie.LoadIDs
		fields["extractId"] = ie.ExtractID
	}
	config.GetLogger().WithFields(fields).Error(err.Error())
}
