package ecs

import "strconv"

// Entity packs a slot index in the low 32 bits and the slot's generation in
// the high 32 bits. A destroyed slot is reused with a new generation, so
// stale handles fail IsAlive.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String prints the slot and generation, e.g. "e3.1".
func (e Entity) String() string {
	return "e" + strconv.FormatUint(uint64(e.id()), 10) + "." + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}
