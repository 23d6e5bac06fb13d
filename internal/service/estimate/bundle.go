package estimate

import "steelestim/internal/storage"

// BundleCount is how many physical bundles a line of quantity pieces fills
// at bundleSize pieces per bundle. An empty line has no bundles, so zero
// quantity is zero bundles rather than one.
func BundleCount(quantity, bundleSize int) int {
	if quantity <= 0 || bundleSize <= 0 {
		return 0
	}
	return (quantity + bundleSize - 1) / bundleSize
}

// DeliveryBundles is the unload/loading handling count for the item.
func DeliveryBundles(item storage.ProcessingItem) int {
	return BundleCount(item.Quantity, item.DeliveryBundleQty)
}

// PackBundles is the move-to-assembly/after-weld handling count for the item.
func PackBundles(item storage.ProcessingItem) int {
	return BundleCount(item.Quantity, item.PackBundleQty)
}
