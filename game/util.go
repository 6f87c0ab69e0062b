package game

import "github.com/memmaker/isotactics/engine/voxel"

func voxelAt(x, y int) voxel.Int3 {
	return voxel.NewInt3(x, y, 0)
}
